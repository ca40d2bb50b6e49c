package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/vocab"
	"github.com/gohealth/itemtypes/xmlio"
)

// defaultFamily is assumed when a coded value names no vocabulary
// family.
const defaultFamily = "wc"

// checkVocabulary walks the parsed document for coded-value shapes (an
// element carrying both <value> and <type> children) and verifies each
// code against the configured vocabulary service. Unknown codes and
// vocabularies produce warnings, or errors in strict mode.
func (c *Codec) checkVocabulary(ctx context.Context, root *xmlio.Navigator, result *itemtypes.Result) {
	_ = root.Walk(func(path string, node *xmlio.Navigator) error {
		value := node.SelectSingle("value")
		typ := node.SelectSingle("type")
		if value == nil || typ == nil || value.Text() == "" || typ.Text() == "" {
			return nil
		}

		key := vocab.Key{
			Family: defaultFamily,
			Name:   typ.Text(),
		}
		if f := node.OptString("family"); f != nil && *f != "" {
			key.Family = *f
		}
		if v := node.OptString("version"); v != nil && *v != "" {
			key.Version = *v
		}

		code := value.Text()
		_, err := c.vocab.Find(ctx, key, code)
		switch {
		case err == nil:
			c.metrics.RecordVocabLookup(true)
		case errors.Is(err, vocab.ErrCodeNotFound):
			c.metrics.RecordVocabLookup(false)
			c.reportVocabIssue(result,
				fmt.Sprintf("code %q not found in vocabulary %s", code, key), path)
		case errors.Is(err, vocab.ErrVocabularyNotFound):
			c.metrics.RecordVocabLookup(false)
			c.reportVocabIssue(result,
				fmt.Sprintf("vocabulary %s not known", key), path)
		default:
			// Transient lookup failures are logged but never fail
			// the payload.
			c.metrics.RecordVocabLookup(false)
			c.log.Debug().Err(err).Str("vocabulary", key.String()).Msg("vocabulary lookup failed")
		}
		return nil
	})
}

func (c *Codec) reportVocabIssue(result *itemtypes.Result, diagnostics, path string) {
	if c.options.StrictVocabulary {
		c.addError(result, itemtypes.IssueVocabulary, diagnostics, path)
		return
	}
	result.AddWarning(itemtypes.IssueVocabulary, diagnostics, path)
}
