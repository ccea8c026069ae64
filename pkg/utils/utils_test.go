package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var rom = []byte{0x00, 0xC3, 0x50, 0x01, 0xCE, 0xED}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(rom)
	w.Close()

	var zipped bytes.Buffer
	zw := zip.NewWriter(&zipped)
	readme, _ := zw.Create("README.txt")
	readme.Write([]byte("not a rom"))
	f, _ := zw.Create("game.gb")
	f.Write(rom)
	zw.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"game.gb", rom},
		{"game.bin", rom},
		{"game.gb.gz", gz.Bytes()},
		{"game.zip", zipped.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadFile(writeFile(t, tt.name, tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, rom) {
				t.Errorf("expected %X, got %X", rom, data)
			}
		})
	}
}

func TestLoadFile_EmptyZip(t *testing.T) {
	var zipped bytes.Buffer
	zip.NewWriter(&zipped).Close()

	_, err := LoadFile(writeFile(t, "empty.zip", zipped.Bytes()))
	if !errors.Is(err, ErrNoROM) {
		t.Errorf("expected ErrNoROM, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb")); err == nil {
		t.Error("expected an error")
	}
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(1, 0, color.RGBA{R: 0xFF, A: 0xFF})

	dst := Scale(src, 3)
	if dst.Bounds().Dx() != 6 || dst.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}
	if got := dst.RGBAAt(5, 2); got.R != 0xFF {
		t.Errorf("expected a red pixel, got %v", got)
	}
	if got := dst.RGBAAt(2, 2); got.R != 0x00 {
		t.Errorf("expected a blank pixel, got %v", got)
	}
}

func TestSavePNG(t *testing.T) {
	pix := make([]uint8, 4*4*2)
	for i := range pix {
		pix[i] = 0xFF
	}
	img := FrameImage(pix, 4, 2)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestDigest(t *testing.T) {
	a := make([]uint8, 160*144)
	b := make([]uint8, 160*144)
	if Digest(a) != Digest(b) {
		t.Error("expected identical frames to share a digest")
	}
	b[100] = 0x55
	if Digest(a) == Digest(b) {
		t.Error("expected different frames to differ")
	}
}
