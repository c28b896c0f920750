package payload

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleJSON = `[["Creator","https://ex/avatar.png","id"],"My List","Desc",[[null,[null,null,"123 St",null,"",[null,null,51.5,-0.1]],"Place A","note"]]]`

func strategyOf(raw string) string {
	_, name, _ := NormalizeWithStrategy(raw)
	return name
}

func TestNormalize_ValidJSONIsNoOp(t *testing.T) {
	for _, in := range []string{sampleJSON, `[]`, `[1,"a",[null]]`} {
		got, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
	assert.Equal(t, "as-is", strategyOf(sampleJSON))
}

func TestNormalize_SentinelPrefix(t *testing.T) {
	want, err := Normalize(sampleJSON)
	require.NoError(t, err)

	for _, prefix := range []string{Sentinel + "\n", Sentinel + `\n`, Sentinel, "  " + Sentinel + "\r\n"} {
		got, err := Normalize(prefix + sampleJSON)
		require.NoError(t, err, "prefix %q", prefix)
		assert.Equal(t, want, got, "prefix %q", prefix)
	}
	assert.Equal(t, "strip-sentinel", strategyOf(Sentinel+"\n"+sampleJSON))
}

func TestNormalize_SlicesSurroundingProse(t *testing.T) {
	got, err := Normalize(`window.APP_INITIALIZATION_STATE=[1,[2,"x"]];trailing noise`)
	require.NoError(t, err)
	assert.Equal(t, `[1,[2,"x"]]`, got)
}

func TestNormalize_UnescapesStringLiteralPayload(t *testing.T) {
	in := `"[\"a\",[\"b\\\\c\"],1]"`
	got, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, `["a",["b\\c"],1]`, got)
	assert.Equal(t, "unescape", strategyOf(in))
}

func TestNormalize_SentinelThenEscapedPayload(t *testing.T) {
	in := Sentinel + `\n[[\"List\",null],\"x=13\"]`
	got, err := Normalize(in)
	require.NoError(t, err)
	assert.True(t, gjson.Valid(got))
	assert.Equal(t, "List", gjson.Get(got, "0.0").String())
	assert.Equal(t, "x=13", gjson.Get(got, "1").String())
}

func TestNormalize_StripsControlCharacters(t *testing.T) {
	in := "[\"a\x01b\",\t\"c\x7f\"]"
	got, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, "[\"ab\",\t\"c\"]", got)
	assert.Equal(t, "strip-control", strategyOf(in))
}

func TestNormalize_RepairsTruncatedPayload(t *testing.T) {
	in := Sentinel + "\n" + `[["a", 1], ["b", 2`
	got, err := Normalize(in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "["))
	assert.True(t, gjson.Valid(got))
	assert.Equal(t, "a", gjson.Get(got, "0.0").String())
}

func TestNormalize_RepairRejectsStrayBracket(t *testing.T) {
	for _, raw := range []string{
		"oops [",
		"<html><body>Error [object Object</body></html>",
		Sentinel + "\nnot json at all [",
	} {
		_, err := Normalize(raw)
		require.Error(t, err, raw)
		assert.True(t, IsFormatError(err), raw)
	}
}

func TestNormalize_RepairDropsDanglingComma(t *testing.T) {
	got, strategy, err := NormalizeWithStrategy(`[["a", 1], ["b", 2],`)
	require.NoError(t, err)
	assert.Equal(t, "repair", strategy)
	assert.Equal(t, "b", gjson.Get(got, "1.0").String())
}

func TestOnlyClosed(t *testing.T) {
	assert.True(t, onlyClosed(`[["a", 1], ["b`, `[["a", 1], ["b"]]`))
	assert.True(t, onlyClosed(`[{"a":`, `[{"a":null}]`))
	assert.False(t, onlyClosed(`[object Object`, `["object Object"]`))
	assert.False(t, onlyClosed(`[1, 2]x`, `[1, 2]`))
	assert.False(t, onlyClosed(`,`, `[]`))
}

func TestNormalize_EmptyPayload(t *testing.T) {
	_, err := Normalize(" \n\t ")
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestNormalize_NoArrayAnywhere(t *testing.T) {
	raw := strings.Repeat("definitely not a payload ", 100)
	got, err := Normalize(raw)
	require.Error(t, err)
	assert.Empty(t, got)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.LessOrEqual(t, utf8.RuneCountInString(fe.Excerpt), maxExcerptRunes+1)
	assert.Contains(t, fe.Error(), "payload format")
	assert.Empty(t, strategyOf(raw))
}

func TestNormalize_ObjectRootRejected(t *testing.T) {
	_, err := Normalize(`{"a": 1}`)
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, `plain`, Unescape(`plain`))
	assert.Equal(t, `"q"`, Unescape(`\"q\"`))
	assert.Equal(t, `a\b`, Unescape(`a\\b`))
	assert.Equal(t, `=`, Unescape(`=`))
	assert.Equal(t, `end\`, Unescape(`end\`))
}

func TestStripSentinel(t *testing.T) {
	assert.Equal(t, "[1]", StripSentinel(Sentinel+"\n[1]"))
	assert.Equal(t, "[1]", StripSentinel(Sentinel+`\n[1]`))
	assert.Equal(t, "[1]", StripSentinel("[1]"))
}

func TestStripControl(t *testing.T) {
	assert.Equal(t, "a\tb\r\nc", StripControl("a\tb\r\n\x00c\x1b"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short"))

	long := strings.Repeat("é", 300)
	ex := Excerpt(long)
	assert.Equal(t, maxExcerptRunes+1, utf8.RuneCountInString(ex))
	assert.True(t, strings.HasSuffix(ex, "…"))
}

func TestFormatError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewFormatError("bad", "raw", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "raw", err.Excerpt)
}
