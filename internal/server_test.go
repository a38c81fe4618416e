package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func serve(e *echo.Echo, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer(t *testing.T) {
	e := NewServer(newTestRepository(t), testLogger(t))

	t.Run("encode", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/encode", `{"format":"r","fields":["0","s2","s3","s1","0","32"],"address":4096}`, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view WordView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "02538820", view.Hex)
		assert.Equal(t, "00000010010100111000100000100000", view.Binary)
		assert.Len(t, view.Fields, 6)
	})

	t.Run("encode out of range", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/encode", `{"format":"j","fields":["2","67108864"]}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "address")
	})

	t.Run("encode unknown format", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/encode", `{"format":"q","fields":[]}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("decode", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/decode/i/2109ffff?signed=true", "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view WordView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "i", view.Format)
		assert.Equal(t, int64(-1), view.Fields[3].Value)

		rec = serve(e, http.MethodGet, "/decode/i/2109ffff", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, int64(65535), view.Fields[3].Value)
	})

	t.Run("decode msgpack", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/decode/r/02538820", "", map[string]string{
			echo.HeaderAccept: MIMEApplicationMsgpack,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MIMEApplicationMsgpack, rec.Header().Get(echo.HeaderContentType))

		var view WordView
		require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "02538820", view.Hex)
		assert.Equal(t, int64(18), view.Fields[1].Value)
	})

	t.Run("decode malformed", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/decode/r/0253882", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(e, http.MethodGet, "/decode/r/02538820?signed=maybe", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("convert", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/convert/dec2hex?value=-1945075712&len=8", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"hex":"8c108000"}`, rec.Body.String())

		rec = serve(e, http.MethodGet, "/convert/hex2dec?hex=8c108000&signed=true", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"value":-1945075712}`, rec.Body.String())

		rec = serve(e, http.MethodGet, "/convert/dec2bits?value=-1&width=4", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"bits":"1111"}`, rec.Body.String())

		rec = serve(e, http.MethodGet, "/convert/bits2dec?bits=1111", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"value":15}`, rec.Body.String())

		rec = serve(e, http.MethodGet, "/convert/dec2hex?value=256&len=2", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(e, http.MethodGet, "/convert/dec2hex?value=1&len=4611686018427387920", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(e, http.MethodGet, "/convert/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("history", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/history", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var views []HistoryView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		assert.Len(t, views, 4)

		rec = serve(e, http.MethodGet, "/history?limit=1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		assert.Len(t, views, 1)

		rec = serve(e, http.MethodGet, "/history?hex=2109FFFF", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		require.Len(t, views, 2)
		immediates := []int64{views[0].Fields[3].Value, views[1].Fields[3].Value}
		assert.ElementsMatch(t, []int64{-1, 65535}, immediates)
		assert.Equal(t, "decode", views[0].Source)
	})
}
