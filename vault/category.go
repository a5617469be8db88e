package vault

import (
	"fmt"

	"github.com/photovaultorg/libphotovault-go/storage"
)

// Category partitions the store namespace. Categories do not share hash
// space: the same content digest may independently exist in two categories,
// each with its own metadata and lifecycle.
type Category string

const (
	// CategoryOriginals holds ingested source photos.
	CategoryOriginals Category = "originals"

	// CategoryRestored holds restored output photos.
	CategoryRestored Category = "restored"

	// CategoryKeys is reserved for wrapped-DEK records. It is internal to
	// the engine and rejected on the public API.
	CategoryKeys Category = storage.KeysCategory
)

// publicCategories is the closed set of categories addressable via the
// public store/retrieve API.
var publicCategories = map[Category]bool{
	CategoryOriginals: true,
	CategoryRestored:  true,
}

// validatePublicCategory rejects unknown categories and the reserved keys
// category.
func validatePublicCategory(c Category) error {
	if !publicCategories[c] {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return nil
}
