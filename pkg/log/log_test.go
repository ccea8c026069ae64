package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

var _ Logger = (*logrus.Logger)(nil)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)

	l.Debugf("hidden %d", 1)
	l.Infof("loaded %s", "tetris")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug output to be filtered, got %q", out)
	}
	if !strings.Contains(out, "level=info msg=loaded tetris") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("expected no timestamp, got %q", out)
	}
}

func TestNewNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("%d", 1)
	l.Errorf("%d", 1)
	l.Debugf("%d", 1)
	l.Warnf("%d", 1)
	l.Fatal("does not exit")
}
