package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, fn func() error) (stdout string, err error) {
	t.Helper()
	oldOut := os.Stdout
	defer func() { os.Stdout = oldOut }()

	outR, outW, _ := os.Pipe()
	os.Stdout = outW

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() { io.Copy(&buf, outR); close(done) }()

	err = fn()
	outW.Close()
	<-done
	return buf.String(), err
}

func TestHelp(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return run([]string{"help", "serve"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "serve FLAGS")
}

func TestMissingCommand(t *testing.T) {
	require.Error(t, run(nil))
}

func TestUnknownCommand(t *testing.T) {
	require.Error(t, run([]string{"frobnicate"}))
}

func TestDemoSchema(t *testing.T) {
	sch := demoSchema()
	require.NotNil(t, sch.Query())
	require.NotNil(t, sch.Query().Field("thing").Argument("id"))
	require.Equal(t, "[Thing]", sch.Query().Field("things").Type.String())
}
