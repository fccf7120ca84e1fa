package media

import (
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ObjectKey builds the upload path for an image:
// <entity-kind-plural>/<slug(name)>-<uuid><ext>. The uuid keeps keys unique
// when names collide; the slug keeps them readable.
func ObjectKey(kind, name, filename string) string {
	ext := path.Ext(filename)
	s := slug.Make(name)
	if s == "" {
		s = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", kind, s, uuid.NewString(), ext)
}
