package ids

import "github.com/segmentio/ksuid"

// New returns a k-sortable unique id. Ids generated later sort after
// earlier ones, which keeps store-assigned insertion order stable.
func New() string {
	return ksuid.New().String()
}
