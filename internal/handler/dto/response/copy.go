package response

import (
	"log/slog"

	"github.com/jinzhu/copier"
)

// copyInto fills same-named fields; a failure here is a programming error, the zero fields are still safe to render
func copyInto(dst, src any) {
	if err := copier.Copy(dst, src); err != nil {
		slog.Error("response mapping failed", "error", err.Error())
	}
}
