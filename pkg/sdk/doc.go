// Package dimreg provides an embedded Go client for the dimension definition
// registry, backed by Postgres or by Redis/Valkey.
//
// A dimension is a named, prioritized JSON Schema fragment that may reference a
// function registered for the same tenant. Writes are validated against the
// draft-07 meta-schema and compiled before they reach storage; reads are tagged
// with the tenant's mandatory flag.
//
//	client, _ := dimreg.New(ctx,
//	    dimreg.WithPostgres("postgres://localhost/dimreg", dimreg.Migrate()),
//	    dimreg.WithTenant("acme", "region", "tier"),
//	)
//	defer client.Close()
//
//	_ = client.Functions("acme").Register(ctx, "geo_lookup")
//
//	dims := client.Dimensions("acme")
//	d, err := dims.Put(ctx, "ann@example.com", dimreg.PutRequest{
//	    Name:     "region",
//	    Priority: 10,
//	    Schema:   json.RawMessage(`{"type":"string","enum":["eu","us"]}`),
//	    FunctionName: dimreg.FunctionName("geo_lookup"),
//	})
//	all, _ := dims.List(ctx)
//
// Errors wrap ErrInvalidInput or ErrUnexpected; use errors.Is to tell a
// rejected request from a storage failure.
package dimreg
