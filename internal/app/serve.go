package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
	"github.com/dshills/gotodoc/internal/jslib"
)

// maxRequestSize bounds one request line, including inline file text.
const maxRequestSize = 8 << 20

// Server answers lookup requests read as newline-delimited JSON.
//
// A request names either a word with its scope:
//
//	{"id":1,"word":"ajax","scope":"source.js","preceding":"$."}
//
// or a position in a file, optionally with the unsaved text:
//
//	{"id":2,"file":"/src/app.py","offset":120,"text":"..."}
//
// Each request gets exactly one response line carrying the same id.
// Commands run to completion and their output is returned in the
// response instead of an output panel. Requests are handled
// concurrently, so responses may arrive out of order.
type Server struct {
	app      *Application
	mu       sync.Mutex
	out      io.Writer
	wg       sync.WaitGroup
	readFile func(string) ([]byte, error)
	logger   *Logger
}

// NewServer creates a server writing responses to out.
func NewServer(a *Application, out io.Writer) *Server {
	return &Server{
		app:      a,
		out:      out,
		readFile: os.ReadFile,
		logger:   a.Logger().WithComponent("serve"),
	}
}

// Serve reads requests from in until EOF, then waits for outstanding
// responses.
func (s *Server) Serve(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxRequestSize)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		req := string(line)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.write(s.Handle(ctx, req))
		}()
	}
	s.wg.Wait()

	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

func (s *Server) write(resp string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.out, resp+"\n"); err != nil {
		s.logger.Error("write response: %v", err)
	}
}

// Handle answers one request line.
func (s *Server) Handle(ctx context.Context, line string) string {
	resp := `{}`
	if !gjson.Valid(line) {
		return setError(resp, fmt.Errorf("invalid json"))
	}

	req := gjson.Parse(line)
	if id := req.Get("id"); id.Exists() {
		resp, _ = sjson.SetRaw(resp, "id", id.Raw)
	}

	switch cmd := req.Get("cmd").String(); cmd {
	case "", "lookup":
		return s.lookup(ctx, req, resp)
	case "stats":
		return s.stats(resp)
	case "scopes":
		resp, _ = sjson.SetRaw(resp, "scopes", ScopesJSON(s.app.Scopes()))
		return resp
	default:
		return setError(resp, fmt.Errorf("unknown cmd %q", cmd))
	}
}

func (s *Server) lookup(ctx context.Context, req gjson.Result, resp string) string {
	var (
		token, label string
		src          jslib.TextSource
	)

	if file := req.Get("file").String(); file != "" {
		var (
			text []byte
			err  error
		)
		if t := req.Get("text"); t.Exists() {
			text = []byte(t.String())
		} else if text, err = s.readFile(file); err != nil {
			return setError(resp, err)
		}

		offset := int(req.Get("offset").Int())
		targets, err := s.app.Targets(ctx, file, text, offset)
		if err != nil {
			return setError(resp, err)
		}
		if len(targets) == 0 {
			return setError(resp, fmt.Errorf("%w at offset %d", ErrEmptyToken, offset))
		}
		t := targets[0]
		token, label, src = t.Word.Text, t.Label, t.Word
		resp, _ = sjson.Set(resp, "word", token)
		resp, _ = sjson.Set(resp, "scope", label)
	} else {
		token = req.Get("word").String()
		label = req.Get("scope").String()
		src = execctx.StringSource(req.Get("preceding").String())
	}

	if token == "" {
		return setError(resp, ErrEmptyToken)
	}

	action := s.app.Lookup(token, label, src)
	resp, _ = sjson.Set(resp, "action", action.Kind.String())
	resp, _ = sjson.Set(resp, "key", action.Key)
	switch action.Kind {
	case handler.KindOpenURL:
		resp, _ = sjson.Set(resp, "url", action.URL)
	case handler.KindRunCommand:
		resp, _ = sjson.Set(resp, "command", action.Command)
	default:
		resp, _ = sjson.Set(resp, "message", action.Message)
	}

	if req.Get("dryRun").Bool() {
		return resp
	}

	if action.Kind == handler.KindRunCommand {
		out := s.app.Runner().RunSync(ctx, action.Command)
		resp, _ = sjson.Set(resp, "output", out.Display())
		resp, _ = sjson.Set(resp, "exitCode", out.ExitCode)
		return resp
	}
	if err := s.app.Perform(ctx, action); err != nil {
		return setError(resp, err)
	}
	return resp
}

func (s *Server) stats(resp string) string {
	m := s.app.Dispatcher().Metrics()
	if m == nil {
		return setError(resp, ErrComponentNotAvailable)
	}
	resp, _ = sjson.Set(resp, "dispatches", m.TotalDispatches())
	resp, _ = sjson.Set(resp, "unsupported", m.TotalUnsupported())
	resp, _ = sjson.Set(resp, "panics", m.TotalPanics())
	resp, _ = sjson.Set(resp, "averageMicros", m.AverageDuration().Microseconds())
	resp, _ = sjson.SetRaw(resp, "keys", "[]")
	for _, km := range m.TopKeys(10) {
		resp, _ = sjson.Set(resp, "keys.-1", map[string]any{
			"key":   km.Key,
			"count": km.DispatchCount,
			"last":  km.LastKind.String(),
		})
	}
	return resp
}

func setError(resp string, err error) string {
	resp, _ = sjson.Set(resp, "error", err.Error())
	return resp
}
