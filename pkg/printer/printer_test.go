package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_KeyValueCountsRunes(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total:", "₹1,400")

	line := strings.TrimSuffix(string(doc.Bytes()[2:]), "\n")
	assert.Equal(t, 20, len([]rune(line)))
	assert.True(t, strings.HasSuffix(line, "₹1,400"))
}

func TestDocument_ItemLineTruncatesLongNames(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.ItemLine(2, "Drop Shoulder T-Shirt Oversized Edition", "800.00")

	line := strings.TrimSuffix(string(doc.Bytes()[2:]), "\n")
	assert.Equal(t, Width58mm, len([]rune(line)))
	assert.True(t, strings.HasPrefix(line, "2x Drop"))
	assert.True(t, strings.HasSuffix(line, " 800.00"))
}

func TestDocument_StartsWithInit(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, Width58mm, doc.Width())
	assert.True(t, bytes.HasPrefix(doc.Bytes(), []byte{ESC, '@'}))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig(Options{Type: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Type())

	_, err = NewPrinterFromConfig(Options{Type: "usb"})
	assert.Error(t, err)

	_, err = NewPrinterFromConfig(Options{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	p := NewUSBPrinter(path)
	require.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte{ESC, '@'}))
	assert.Equal(t, []byte{ESC, '@'}, <-received)
}
