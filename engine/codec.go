// Package engine provides the thing XML codec: decode bytes into typed
// values, encode typed values back to wire XML, and report data-quality
// findings on the way through.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/registry"
	"github.com/gohealth/itemtypes/vocab"
	"github.com/gohealth/itemtypes/xmlio"
)

// Codec decodes, encodes, and validates thing XML payloads. A Codec is
// safe for concurrent use once constructed.
type Codec struct {
	options  *itemtypes.Options
	registry *registry.Registry
	vocab    vocab.Service
	metrics  *itemtypes.Metrics
	log      zerolog.Logger

	// Semaphore for batch processing
	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates a Codec resolving types through the default registry.
func New(ctx context.Context, opts ...itemtypes.Option) (*Codec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := itemtypes.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Codec{
		options:  options,
		registry: registry.Default,
		metrics:  itemtypes.NewMetrics(),
		log:      zerolog.Nop(),
	}, nil
}

// UseRegistry replaces the type registry the codec dispatches through.
func (c *Codec) UseRegistry(reg *registry.Registry) {
	if reg != nil {
		c.registry = reg
	}
}

// UseVocabulary installs the vocabulary service backing coded-value
// checks. The service is wrapped in an LRU cache sized by the
// VocabularyCacheSize option. Enables vocabulary checks.
func (c *Codec) UseVocabulary(svc vocab.Service) {
	if svc == nil {
		c.vocab = nil
		return
	}
	c.vocab = vocab.NewCached(svc, c.options.VocabularyCacheSize)
	c.options.CheckVocabulary = true
}

// UseLogger installs a logger for debug-level decode/encode traces.
func (c *Codec) UseLogger(log zerolog.Logger) {
	c.log = log
}

// Metrics returns the codec's metrics collector.
func (c *Codec) Metrics() *itemtypes.Metrics {
	return c.metrics
}

// Options returns the codec's configuration.
func (c *Codec) Options() *itemtypes.Options {
	return c.options
}

// Close releases codec resources.
func (c *Codec) Close() error {
	return nil
}

// Decode parses a thing XML payload into its typed value. The payload
// may be a bare type element (e.g. <height>) or a full <thing> envelope
// carrying <type-id> and <data-xml>. The returned Result carries all
// findings; the typed value is nil when decoding failed. Callers own
// the Result and should Release it when done.
func (c *Codec) Decode(ctx context.Context, data []byte) (itemtypes.TypeData, *itemtypes.Result) {
	start := time.Now()
	result := itemtypes.AcquireResult()

	if err := ctx.Err(); err != nil {
		c.addError(result, itemtypes.IssueProcessing, err.Error(), "")
		c.metrics.RecordDecode(time.Since(start), false)
		return nil, result
	}

	root, err := xmlio.Parse(data)
	if err != nil {
		c.addError(result, itemtypes.IssueStructure, fmt.Sprintf("malformed XML: %v", err), "")
		c.metrics.RecordDecode(time.Since(start), false)
		return nil, result
	}

	value := c.decodeRoot(root, result)
	if value != nil && c.options.CheckVocabulary && c.vocab != nil {
		c.checkVocabulary(ctx, root, result)
	}

	valid := !result.HasErrors()
	c.metrics.RecordDecode(time.Since(start), valid)
	c.metrics.RecordIssues(result.Issues)

	c.log.Debug().
		Str("type", result.TypeName).
		Bool("valid", valid).
		Int("issues", result.IssueCount()).
		Dur("elapsed", time.Since(start)).
		Msg("decode")

	if result.HasErrors() {
		return nil, result
	}
	return value, result
}

// decodeRoot dispatches the parsed root element to the right type and
// records findings on result. Returns nil when the payload could not be
// decoded.
func (c *Codec) decodeRoot(root *xmlio.Navigator, result *itemtypes.Result) itemtypes.TypeData {
	if root.Name() == "thing" {
		thing, err := registry.ParseThing(root, c.registry)
		if err != nil {
			c.recordDecodeError(result, err, "thing")
			return nil
		}
		result.TypeName = thing.Data.TypeName()
		result.TypeID = thing.TypeID
		return thing.Data
	}

	id, ok := c.registry.LookupName(root.Name())
	if !ok {
		c.addError(result, itemtypes.IssueUnknownType,
			fmt.Sprintf("no registered type for element %q", root.Name()), root.Name())
		return nil
	}

	value, err := c.registry.NewData(id)
	if err != nil {
		c.recordDecodeError(result, err, root.Name())
		return nil
	}
	result.TypeName = value.TypeName()
	result.TypeID = value.TypeID()

	if err := value.ParseXML(root); err != nil {
		c.recordDecodeError(result, err, root.Name())
		return nil
	}
	return value
}

// recordDecodeError translates a parse failure into a classified issue.
func (c *Codec) recordDecodeError(result *itemtypes.Result, err error, path string) {
	var parseErr *itemtypes.ParseError
	if errors.As(err, &parseErr) && parseErr.Element != "" {
		path = path + "/" + parseErr.Element
	}

	switch {
	case errors.Is(err, itemtypes.ErrUnknownTypeID):
		c.addError(result, itemtypes.IssueUnknownType, err.Error(), path)
	case errors.Is(err, itemtypes.ErrElementMissing):
		c.addError(result, itemtypes.IssueRequired, err.Error(), path)
	case errors.Is(err, itemtypes.ErrValueOutOfRange):
		if c.options.CheckRanges {
			c.addError(result, itemtypes.IssueValue, err.Error(), path)
		} else {
			result.AddWarning(itemtypes.IssueValue, err.Error(), path)
		}
	default:
		c.addError(result, itemtypes.IssueValue, err.Error(), path)
	}
}

// addError appends an error finding unless the MaxErrors cap has been
// reached.
func (c *Codec) addError(result *itemtypes.Result, code itemtypes.IssueCode, diagnostics, path string) {
	if c.options.MaxErrors > 0 && result.ErrorCount() >= c.options.MaxErrors {
		return
	}
	result.AddError(code, diagnostics, path)
}

// Encode serializes a typed value to wire XML. Mandatory fields are
// verified before any output; indentation follows the Indent option.
func (c *Codec) Encode(data itemtypes.TypeData) ([]byte, error) {
	if data == nil {
		return nil, errors.New("engine: nil data")
	}

	w := c.newWriter()
	defer w.Close()

	if err := data.WriteXML(w); err != nil {
		return nil, err
	}
	out, err := w.Bytes()
	if err != nil {
		return nil, err
	}

	c.metrics.RecordEncode()
	c.log.Debug().
		Str("type", data.TypeName()).
		Int("bytes", len(out)).
		Msg("encode")
	return out, nil
}

// EncodeThing serializes a typed value inside a <thing> envelope with a
// fresh thing ID.
func (c *Codec) EncodeThing(data itemtypes.TypeData) ([]byte, error) {
	if data == nil {
		return nil, errors.New("engine: nil data")
	}

	w := c.newWriter()
	defer w.Close()

	if err := registry.NewThing(data).WriteXML(w); err != nil {
		return nil, err
	}
	out, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	c.metrics.RecordEncode()
	return out, nil
}

// Validate decodes a payload purely for its findings.
func (c *Codec) Validate(ctx context.Context, data []byte) *itemtypes.Result {
	_, result := c.Decode(ctx, data)
	return result
}

// Roundtrip decodes a payload and re-encodes it, returning the
// canonical serialization alongside the decode findings. The output is
// nil when decoding failed.
func (c *Codec) Roundtrip(ctx context.Context, data []byte) ([]byte, *itemtypes.Result, error) {
	value, result := c.Decode(ctx, data)
	if value == nil {
		return nil, result, nil
	}
	out, err := c.Encode(value)
	if err != nil {
		return nil, result, err
	}
	return out, result, nil
}

// ValidateBatch validates multiple payloads in parallel, bounded by the
// WorkerCount option. Results are returned in input order; each carries
// its index as JobID.
func (c *Codec) ValidateBatch(ctx context.Context, payloads [][]byte) []*itemtypes.Result {
	results := make([]*itemtypes.Result, len(payloads))

	c.workerPoolOnce.Do(func() {
		workers := c.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		c.workerPool = make(chan struct{}, workers)
	})

	var wg sync.WaitGroup
	for i, payload := range payloads {
		wg.Add(1)
		go func(idx int, data []byte) {
			defer wg.Done()

			c.workerPool <- struct{}{}
			defer func() { <-c.workerPool }()

			result := c.Validate(ctx, data)
			result.JobID = fmt.Sprintf("%d", idx)
			results[idx] = result
		}(i, payload)
	}
	wg.Wait()

	return results
}

func (c *Codec) newWriter() *xmlio.Writer {
	if c.options.Indent {
		return xmlio.NewIndentWriter()
	}
	return xmlio.NewWriter()
}
