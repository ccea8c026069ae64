//go:build !test

package utils

import (
	"image"
	"strings"

	"github.com/sqweek/dialog"
)

// AskForFile shows a dialog to open a file.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title)

	// show the dialog
	return builder.Load()
}

// SaveImage asks the user where to save img, and saves it as a PNG.
func SaveImage(img image.Image) error {
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Image").Save()
	if err != nil {
		return err
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	return SavePNG(filename, img)
}
