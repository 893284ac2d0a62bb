package exec

import (
	"log/slog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sandrolain/gojsonpath/pkg/cache"
	"github.com/sandrolain/gojsonpath/pkg/document"
	"github.com/sandrolain/gojsonpath/pkg/types"
)

// DefaultMaxDepth limits evaluation recursion: path nesting, filter
// nesting and recursive descent all consume depth.
const DefaultMaxDepth = 10000

// DefaultRegexCacheSize is the capacity of the implicit like_regex matcher
// cache.
const DefaultRegexCacheSize = 256

type config struct {
	vars       Variables
	varsJSON   string
	silent     bool
	maxDepth   int
	logger     *slog.Logger
	debug      bool
	regexCache *cache.Cache
	collation  language.Tag
	collate    bool
}

// Option configures an Executor or a single query call.
type Option func(*config)

// WithVars supplies the variable provider for $name references.
func WithVars(v Variables) Option {
	return func(c *config) { c.vars = v }
}

// WithVarsJSON supplies variables as a JSON object; members become the
// bindings. Ignored when WithVars is also given.
func WithVarsJSON(src string) Option {
	return func(c *config) { c.varsJSON = src }
}

// WithSilent suppresses recoverable evaluation errors: queries return an
// empty result instead of failing. Undefined variables and engine
// invariant violations still fail.
func WithSilent() Option {
	return func(c *config) { c.silent = true }
}

// WithMaxDepth overrides the evaluation recursion limit; 0 disables it.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDebug enables debug tracing through the configured logger.
func WithDebug() Option {
	return func(c *config) { c.debug = true }
}

// WithRegexCache shares a like_regex matcher cache between executors.
func WithRegexCache(c *cache.Cache) Option {
	return func(cfg *config) { cfg.regexCache = c }
}

// WithCollation orders string comparisons with the collation rules of the
// given language instead of byte order.
func WithCollation(tag language.Tag) Option {
	return func(c *config) {
		c.collation = tag
		c.collate = true
	}
}

// Executor runs compiled paths over documents. An Executor is immutable
// and safe for concurrent use; per-call options apply on top of the
// options it was built with.
type Executor struct {
	cfg config
}

// New creates an executor with the given default options.
func New(opts ...Option) *Executor {
	cfg := config{
		maxDepth:   DefaultMaxDepth,
		regexCache: cache.New(DefaultRegexCacheSize),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Executor{cfg: cfg}
}

func (e *Executor) newContext(doc document.Value, opts []Option) (*execContext, error) {
	cfg := e.cfg
	for _, opt := range opts {
		opt(&cfg)
	}

	vars := cfg.vars
	if vars == nil && cfg.varsJSON != "" {
		jv, err := NewJSONVariables(cfg.varsJSON)
		if err != nil {
			return nil, err
		}
		vars = jv
	}

	var col *collate.Collator
	if cfg.collate {
		// Collators are stateful, so each evaluation gets its own.
		col = collate.New(cfg.collation)
	}

	baseCount := 0
	if vars != nil {
		baseCount = vars.BaseObjectCount()
	}

	root := fromDocument(doc)
	return &execContext{
		vars:               vars,
		root:               root,
		stack:              []*Item{root},
		lastGeneratedID:    1 + baseCount,
		innermostArraySize: -1,
		throwErrors:        !cfg.silent,
		maxDepth:           cfg.maxDepth,
		logger:             cfg.logger,
		debug:              cfg.debug,
		regexCache:         cfg.regexCache,
		collator:           col,
	}, nil
}

func (cxt *execContext) applyMode(path *types.Path) {
	cxt.laxMode = path.Lax
	cxt.ignoreStructuralErrors = path.Lax
}

func (cxt *execContext) trace(msg string, args ...any) {
	if cxt.debug && cxt.logger != nil {
		cxt.logger.Debug(msg, args...)
	}
}

// Query evaluates path over doc and returns every matching item in
// document order.
func (e *Executor) Query(path *types.Path, doc document.Value, opts ...Option) (*ValueList, error) {
	cxt, err := e.newContext(doc, opts)
	if err != nil {
		return nil, err
	}
	cxt.applyMode(path)
	cxt.trace("executing path query", "lax", path.Lax)

	found := &ValueList{}
	if _, execErr := cxt.execute(path, found); execErr != nil {
		if !cxt.throwErrors && !isHard(execErr) {
			cxt.trace("suppressed path error", "error", execErr)
			return &ValueList{}, nil
		}
		return nil, unwrapQueryError(execErr)
	}
	return found, nil
}

// Exists reports whether path matches anything in doc, without
// materializing results in lax mode.
func (e *Executor) Exists(path *types.Path, doc document.Value, opts ...Option) (bool, error) {
	cxt, err := e.newContext(doc, opts)
	if err != nil {
		return false, err
	}
	cxt.applyMode(path)

	st, execErr := cxt.execute(path, nil)
	if execErr != nil {
		if !cxt.throwErrors && !isHard(execErr) {
			cxt.trace("suppressed path error", "error", execErr)
			return false, nil
		}
		return false, unwrapQueryError(execErr)
	}
	return st == resOK, nil
}

// Match evaluates a predicate path that must produce a single boolean.
// A single null result, or any suppressed error in silent mode, reports
// false.
func (e *Executor) Match(path *types.Path, doc document.Value, opts ...Option) (bool, error) {
	cxt, err := e.newContext(doc, opts)
	if err != nil {
		return false, err
	}
	cxt.applyMode(path)

	found := &ValueList{}
	if _, execErr := cxt.execute(path, found); execErr != nil {
		if !cxt.throwErrors && !isHard(execErr) {
			cxt.trace("suppressed path error", "error", execErr)
			return false, nil
		}
		return false, unwrapQueryError(execErr)
	}

	if found.Len() == 1 {
		switch head := found.Head(); head.kind {
		case ItemBool:
			return head.b, nil
		case ItemNull:
			return false, nil
		}
	}
	if cxt.throwErrors {
		return false, types.NewError(types.ErrSingletonRequired,
			"single boolean result is expected")
	}
	return false, nil
}
