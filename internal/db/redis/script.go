package redis

import (
	"context"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/dimreg/internal/db"
)

// EvalHash runs script atomically (EVALSHA, falling back to EVAL on NOSCRIPT)
// and decodes its flat field/value array reply into a map.
func (s *Store) EvalHash(ctx context.Context, script *db.Script, keys, args []string) (map[string]string, error) {
	res := s.lua(script).Exec(ctx, s.client, keys, args)
	if err := res.Error(); err != nil {
		if rej, ok := rejection(script, err); ok {
			return nil, rej
		}
		return nil, &db.Error{Op: db.OpEvalSha, Err: err}
	}
	m, err := res.AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpEvalSha, Err: err}
	}
	return m, nil
}

func (s *Store) lua(script *db.Script) *rueidis.Lua {
	if l, ok := s.scripts.Load(script.Name); ok {
		return l.(*rueidis.Lua)
	}
	l, _ := s.scripts.LoadOrStore(script.Name, rueidis.NewLuaScript(script.Source))
	return l.(*rueidis.Lua)
}

// rejection maps a script's declared error reply to *db.ScriptError.
func rejection(script *db.Script, err error) (*db.ScriptError, bool) {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return nil, false
	}
	msg := re.Error()
	for _, reason := range script.Rejections {
		if isRedisErr(err, reason) {
			return &db.ScriptError{
				Script: script.Name,
				Reason: reason,
				Detail: strings.TrimSpace(msg),
			}, true
		}
	}
	return nil, false
}
