package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samachar-app/samachar/internal/taxonomy"
)

// MaxTags caps how many topics a single text can be tagged with. Topics past
// the cap are silently dropped, in taxonomy declaration order.
const MaxTags = 3

type compiledTopic struct {
	name     taxonomy.Topic
	patterns []*regexp.Regexp
}

// Classifier tags free text with taxonomy topics using case-insensitive
// whole-word keyword matching. It is immutable after construction and safe
// for concurrent use.
type Classifier struct {
	topics []compiledTopic
}

// New compiles a classifier from a taxonomy. Keywords are wrapped in word
// boundaries verbatim, so a keyword that is not a valid regex fragment is a
// construction error.
func New(tax *taxonomy.Taxonomy) (*Classifier, error) {
	c := &Classifier{topics: make([]compiledTopic, 0, len(tax.Topics))}

	for _, entry := range tax.Topics {
		ct := compiledTopic{
			name:     entry.Name,
			patterns: make([]*regexp.Regexp, 0, len(entry.Keywords)),
		}
		for _, kw := range entry.Keywords {
			re, err := regexp.Compile(`(?i)\b` + strings.ToLower(kw) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("topic %q keyword %q: %w", entry.Name, kw, err)
			}
			ct.patterns = append(ct.patterns, re)
		}
		c.topics = append(c.topics, ct)
	}

	return c, nil
}

// Classify returns the topics whose keyword list has at least one whole-word
// match in text, in taxonomy declaration order, capped at MaxTags. A topic is
// claimed by its first matching keyword; remaining keywords for that topic are
// not tested.
func (c *Classifier) Classify(text string) []taxonomy.Topic {
	if text == "" {
		return nil
	}

	normalized := strings.ToLower(text)

	var matched []taxonomy.Topic
	for _, topic := range c.topics {
		for _, re := range topic.patterns {
			if re.MatchString(normalized) {
				matched = append(matched, topic.name)
				break
			}
		}
		if len(matched) == MaxTags {
			break
		}
	}

	return matched
}
