package wirevalue_test

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/aws/smithy-go/encoding/httpbinding"
	smithytime "github.com/aws/smithy-go/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unity-Technologies/restbind/wirevalue"
)

type openEnum string

func TestParseIntegerWidth(t *testing.T) {
	v, err := wirevalue.ParseByte("120")
	require.NoError(t, err)
	assert.Equal(t, int8(120), v)

	_, err = wirevalue.ParseByte("99999999999")
	assert.Error(t, err)
	_, err = wirevalue.ParseByte("-129")
	assert.Error(t, err)

	hex, err := wirevalue.ParseByte("0x7f")
	require.NoError(t, err)
	assert.Equal(t, int8(127), hex)

	_, err = wirevalue.ParseShort("32768")
	assert.Error(t, err)
	_, err = wirevalue.ParseInteger("2147483648")
	assert.Error(t, err)
	i, err := wirevalue.ParseInteger("-2147483648")
	require.NoError(t, err)
	assert.Equal(t, int32(-2147483648), i)

	l, err := wirevalue.ParseLong("0b101")
	require.NoError(t, err)
	assert.Equal(t, int64(5), l)
	_, err = wirevalue.ParseLong("12a")
	assert.Error(t, err)
}

func TestParseBoolean(t *testing.T) {
	for in, want := range map[string]bool{"true": true, "false": false} {
		got, err := wirevalue.ParseBoolean(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"1", "TRUE", "t", ""} {
		_, err := wirevalue.ParseBoolean(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseFloats(t *testing.T) {
	f, err := wirevalue.ParseFloat("1.5")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	_, err = wirevalue.ParseFloat("1e39")
	assert.Error(t, err, "1e39 overflows a float32")

	d, err := wirevalue.ParseDouble("-0.25")
	require.NoError(t, err)
	assert.Equal(t, -0.25, d)
	_, err = wirevalue.ParseDouble("one")
	assert.Error(t, err)
}

func TestParseBigNumbers(t *testing.T) {
	bi, err := wirevalue.ParseBigInteger("0x10")
	require.NoError(t, err)
	assert.Equal(t, int64(16), bi.Int64())

	_, err = wirevalue.ParseBigInteger("ten")
	assert.EqualError(t, err, "incorrect conversion from string to BigInteger type")

	bd, err := wirevalue.ParseBigDecimal("2.5")
	require.NoError(t, err)
	f, _ := bd.Float64()
	assert.Equal(t, 2.5, f)

	_, err = wirevalue.ParseBigDecimal("2.5.5")
	assert.EqualError(t, err, "incorrect conversion from string to BigDecimal type")
}

func TestParseBlob(t *testing.T) {
	b, err := wirevalue.ParseBlob("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	_, err = wirevalue.ParseBlob("not base64!")
	assert.Error(t, err)
}

func TestTimestamps(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()

	ts, err := wirevalue.ParseEpochSeconds("0")
	require.NoError(t, err)
	assert.True(t, ts.Equal(epoch))

	frac, err := wirevalue.ParseEpochSeconds("1.5")
	require.NoError(t, err)
	assert.True(t, frac.Equal(time.Unix(1, 500*int64(time.Millisecond))))

	_, err = wirevalue.ParseHTTPDate("2020-01-02")
	assert.Error(t, err)
	_, err = wirevalue.ParseDateTime("Thu, 02 Jan 2020 03:04:05 GMT")
	assert.Error(t, err)
}

// wireRequest sends r through its wire format so that header names are
// canonicalized exactly as a server would see them.
func wireRequest(t *testing.T, r *http.Request) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	out, err := http.ReadRequest(bufio.NewReader(&buf))
	require.NoError(t, err)
	return out
}

func TestRoundTrip(t *testing.T) {
	instant := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	epoch := time.Unix(0, 0).UTC()
	tags := []string{"c", "a", "b"}
	ids := []int32{3, 1, 2}

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	enc, err := httpbinding.NewEncoder("/things/{Id}", "", req.Header)
	require.NoError(t, err)

	require.NoError(t, enc.SetURI("Id").String("thing 1"))
	enc.SetHeader("X-Bool").Boolean(true)
	enc.SetHeader("X-Byte").Byte(-7)
	enc.SetHeader("X-Short").Short(1234)
	enc.SetHeader("X-Int").Integer(-123456)
	enc.SetHeader("X-Long").Long(1 << 40)
	enc.SetHeader("X-Float").Float(1.5)
	enc.SetHeader("X-Double").Double(3.25)
	enc.SetHeader("X-Big-Int").BigInteger(big.NewInt(9007199254740993))
	enc.SetHeader("X-Big-Dec").BigDecimal(big.NewFloat(2.5))
	enc.SetHeader("X-String").String("hello")
	enc.SetHeader("X-Enum").String(string(openEnum("not-a-declared-value")))
	enc.SetHeader("X-Blob").String(base64.StdEncoding.EncodeToString([]byte{0, 1, 2}))
	enc.SetHeader("X-Epoch").Double(smithytime.FormatEpochSeconds(epoch))
	enc.SetHeader("X-Http-Date").String(smithytime.FormatHTTPDate(instant))
	enc.SetQuery("since").String(smithytime.FormatDateTime(instant))
	for i := range tags {
		enc.AddHeader("X-Tags").String(tags[i])
	}
	for i := range ids {
		enc.AddQuery("id").Integer(ids[i])
	}
	req, err = enc.Encode(req)
	require.NoError(t, err)

	wire := wireRequest(t, req)
	h := wire.Header

	assert.Equal(t, "0", h.Get("X-Epoch"), "epoch zero is written as 0")

	b, err := wirevalue.ParseBoolean(h.Get("X-Bool"))
	require.NoError(t, err)
	assert.True(t, b)

	i8, err := wirevalue.ParseByte(h.Get("X-Byte"))
	require.NoError(t, err)
	assert.Equal(t, int8(-7), i8)

	i16, err := wirevalue.ParseShort(h.Get("X-Short"))
	require.NoError(t, err)
	assert.Equal(t, int16(1234), i16)

	i32, err := wirevalue.ParseInteger(h.Get("X-Int"))
	require.NoError(t, err)
	assert.Equal(t, int32(-123456), i32)

	i64, err := wirevalue.ParseLong(h.Get("X-Long"))
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), i64)

	f32, err := wirevalue.ParseFloat(h.Get("X-Float"))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)

	f64, err := wirevalue.ParseDouble(h.Get("X-Double"))
	require.NoError(t, err)
	assert.Equal(t, 3.25, f64)

	bi, err := wirevalue.ParseBigInteger(h.Get("X-Big-Int"))
	require.NoError(t, err)
	assert.Equal(t, 0, bi.Cmp(big.NewInt(9007199254740993)))

	bd, err := wirevalue.ParseBigDecimal(h.Get("X-Big-Dec"))
	require.NoError(t, err)
	assert.Equal(t, 0, bd.Cmp(big.NewFloat(2.5)))

	assert.Equal(t, "hello", h.Get("X-String"))
	assert.Equal(t, openEnum("not-a-declared-value"), openEnum(h.Get("X-Enum")))

	blob, err := wirevalue.ParseBlob(h.Get("X-Blob"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, blob)

	ep, err := wirevalue.ParseEpochSeconds(h.Get("X-Epoch"))
	require.NoError(t, err)
	assert.True(t, ep.Equal(epoch))

	hd, err := wirevalue.ParseHTTPDate(h.Get("X-Http-Date"))
	require.NoError(t, err)
	assert.True(t, hd.Equal(instant))

	dt, err := wirevalue.ParseDateTime(wire.URL.Query().Get("since"))
	require.NoError(t, err)
	assert.True(t, dt.Equal(instant))

	assert.Equal(t, "/things/thing%201", wire.URL.EscapedPath())

	// One wire entry per collection element, in element order.
	assert.Equal(t, tags, h.Values("X-Tags"))
	var gotIDs []int32
	for _, s := range wire.URL.Query()["id"] {
		v, err := wirevalue.ParseInteger(s)
		require.NoError(t, err)
		gotIDs = append(gotIDs, v)
	}
	assert.Equal(t, ids, gotIDs)
}
