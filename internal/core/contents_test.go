package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentScannerParsesEntries(t *testing.T) {
	input := "usr/bin/gcc devel/gcc\nusr/share/doc/gcc/README doc/gcc\n"
	scanner := NewContentScanner(strings.NewReader(input))

	require.True(t, scanner.Scan())
	require.Equal(t, "usr/bin/gcc", scanner.File())
	require.Equal(t, "devel/gcc", scanner.Location())

	require.True(t, scanner.Scan())
	require.Equal(t, "usr/share/doc/gcc/README", scanner.File())
	require.Equal(t, "doc/gcc", scanner.Location())

	require.False(t, scanner.Scan())
	require.NoError(t, scanner.Err())
}

func TestContentScannerSkipsShortLines(t *testing.T) {
	input := "\nsome-banner-text\nusr/bin/tool utils/tool\n  \n"
	scanner := NewContentScanner(strings.NewReader(input))

	require.True(t, scanner.Scan())
	require.Equal(t, "usr/bin/tool", scanner.File())
	require.False(t, scanner.Scan())
}

func TestContentScannerTakesFirstTwoColumns(t *testing.T) {
	scanner := NewContentScanner(strings.NewReader("usr/bin/x utils/x extra trailing\n"))
	require.True(t, scanner.Scan())
	require.Equal(t, "usr/bin/x", scanner.File())
	require.Equal(t, "utils/x", scanner.Location())
}
