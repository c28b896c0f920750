package savedlist

import (
	"strings"

	"github.com/sells-group/savedlist-cli/internal/jsonval"
	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/payload"
)

// maxHeaderDepth limits name/description candidates to root children and
// their direct children; deeper strings belong to place entries.
const maxHeaderDepth = 2

// ExtractHeader recovers the list title, description and creator from the
// decoded payload. Missing metadata never produces an error; only a
// non-array root does.
func ExtractHeader(root jsonval.Value) (model.Header, error) {
	if !root.IsArray() {
		return model.Header{}, payload.NewFormatError("root is a "+root.Kind().String()+", want array", "", nil)
	}

	var (
		h             model.Header
		found         bool
		before, after []string
	)
	jsonval.Walk(root, func(v jsonval.Value, depth int) jsonval.Action {
		if !found {
			if c, ok := matchCreator(v); ok {
				h.CreatorName = strings.TrimSpace(c.name)
				h.CreatorImageURL = strings.TrimSpace(c.imageURL)
				found = true
				return jsonval.SkipChildren
			}
		}
		if depth == 0 || depth > maxHeaderDepth {
			return jsonval.Continue
		}
		s, ok := v.Str()
		if !ok || !isHeaderText(s) {
			return jsonval.Continue
		}
		if found {
			after = append(after, strings.TrimSpace(s))
		} else {
			before = append(before, strings.TrimSpace(s))
		}
		return jsonval.Continue
	})

	// Text after the creator block wins; when the creator sits at the end of
	// the payload the title precedes it instead.
	candidates := after
	if len(candidates) == 0 {
		candidates = before
	}
	if len(candidates) > 0 {
		h.Name = candidates[0]
	}
	if len(candidates) > 1 {
		h.Description = candidates[1]
	}
	if h.Name == "" {
		h.Name = model.DefaultListName
	}
	return h, nil
}

func isHeaderText(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !hasHTTPPrefix(s)
}
