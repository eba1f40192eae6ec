package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"lxoreader/internal/admin/api"
	"lxoreader/internal/admin/router"
	"lxoreader/internal/lxob"
	"lxoreader/internal/lxob/lxobtest"
	"lxoreader/internal/pkg"
	"lxoreader/internal/report"
)

func newTestRouter(maxBody int64) (*gin.Engine, *api.Handler) {
	h := &api.Handler{
		Options: lxob.DefaultOptions(),
		MaxBody: maxBody,
		Metrics: pkg.NewMetrics(),
		Pool:    pkg.NewBufferPool(1024),
	}
	return router.SetupRouter(h, []string{"*"}, zap.NewNop()), h
}

func post(r *gin.Engine, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/octet-stream")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) api.ErrorResponse {
	var resp api.ErrorResponse
	So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
	return resp
}

var testPoints = []lxob.Point{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: -3}, {X: 4, Y: 5, Z: 6}}

func testFile() []byte {
	return lxobtest.File(
		lxobtest.Chunk("TAGS", []byte("Default\x00")),
		lxobtest.Chunk("PNTS", lxobtest.Points(testPoints...)),
	)
}

func TestDecodeHandler(t *testing.T) {
	Convey("POST /api/v1/decode", t, func() {
		gin.SetMode(gin.TestMode)
		r, _ := newTestRouter(1 << 20)

		Convey("Success", func() {
			w := post(r, "/api/v1/decode", testFile())
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

			var s report.Summary
			So(json.Unmarshal(w.Body.Bytes(), &s), ShouldBeNil)
			So(s.Version, ShouldEqual, "32.4.1")
			So(s.ChunkCount, ShouldEqual, 2)
			So(s.PointCount, ShouldEqual, 3)
			So(s.Bounds, ShouldNotBeNil)
			So(s.Bounds.Max, ShouldResemble, lxob.Point{X: 4, Y: 5, Z: 6})
		})

		Convey("Request id is kept", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/decode", bytes.NewReader(testFile()))
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("Truncated file", func() {
			w := post(r, "/api/v1/decode", testFile()[:30])
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			resp := decodeError(w)
			So(resp.Kind, ShouldEqual, "truncated")
			So(resp.RequestID, ShouldNotBeEmpty)
		})

		Convey("Not LXOB", func() {
			buf := testFile()
			copy(buf[8:], "ILBM")
			w := post(r, "/api/v1/decode", buf)
			So(w.Code, ShouldEqual, http.StatusUnsupportedMediaType)
			So(decodeError(w).Kind, ShouldEqual, "not_lxob_format")
		})

		Convey("Missing points when required", func() {
			buf := lxobtest.File(lxobtest.Chunk("TAGS", []byte("a\x00")))
			So(post(r, "/api/v1/decode", buf).Code, ShouldEqual, http.StatusOK)

			w := post(r, "/api/v1/decode?require_points=true", buf)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w).Kind, ShouldEqual, "chunk_not_found")
		})

		Convey("Bad query", func() {
			So(post(r, "/api/v1/decode?locate=fast", testFile()).Code, ShouldEqual, http.StatusBadRequest)
			So(post(r, "/api/v1/decode?require_points=maybe", testFile()).Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestBodyLimit(t *testing.T) {
	Convey("Body larger than max_body", t, func() {
		gin.SetMode(gin.TestMode)
		r, _ := newTestRouter(64)

		w := post(r, "/api/v1/decode", testFile())
		So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
	})
}

func TestChunksHandler(t *testing.T) {
	Convey("POST /api/v1/decode/chunks", t, func() {
		gin.SetMode(gin.TestMode)
		r, _ := newTestRouter(1 << 20)

		w := post(r, "/api/v1/decode/chunks", testFile())
		So(w.Code, ShouldEqual, http.StatusOK)

		var list report.ChunkList
		So(json.Unmarshal(w.Body.Bytes(), &list), ShouldBeNil)
		So(len(list), ShouldEqual, 2)
		So(list[0].Offset, ShouldEqual, lxob.HeaderSize)
		So(list[1].Tag, ShouldEqual, lxob.PntsTag)
		So(list[1].Offset, ShouldEqual, lxob.HeaderSize+16)
	})
}

func TestPointsHandler(t *testing.T) {
	Convey("POST /api/v1/decode/points", t, func() {
		gin.SetMode(gin.TestMode)
		r, h := newTestRouter(1 << 20)

		Convey("All points", func() {
			w := post(r, "/api/v1/decode/points", testFile())
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp api.PointsResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Total, ShouldEqual, 3)
			So(resp.Count, ShouldEqual, 3)
		})

		Convey("Filtered", func() {
			w := post(r, "/api/v1/decode/points?where=z+%3E+0", testFile())
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp api.PointsResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Where, ShouldEqual, "z > 0")
			So(resp.Count, ShouldEqual, 2)
			So(resp.Points[1].Index, ShouldEqual, 2)
		})

		Convey("Invalid expression", func() {
			w := post(r, "/api/v1/decode/points?where=x+%2B+1", testFile())
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("No PNTS chunk", func() {
			w := post(r, "/api/v1/decode/points", lxobtest.File(lxobtest.Chunk("TAGS", []byte("a\x00"))))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Metrics are recorded", func() {
			post(r, "/api/v1/decode/points", testFile())
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `lxob_decode_duration_seconds_count{operation="points"} 1`)
			So(h.Metrics, ShouldNotBeNil)
		})
	})
}

func TestHealth(t *testing.T) {
	Convey("GET /health", t, func() {
		gin.SetMode(gin.TestMode)
		r, _ := newTestRouter(1 << 20)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusOK)
		So(strings.TrimSpace(w.Body.String()), ShouldEqual, "OK")
	})
}

func TestNewHandler(t *testing.T) {
	Convey("NewHandler from config", t, func() {
		config := pkg.DefaultConfig()
		h, err := api.NewHandler(config)
		So(err, ShouldBeNil)
		So(h.Options.RequireLxob, ShouldBeTrue)
		So(h.MaxBody, ShouldEqual, int64(64<<20))

		config.Decode.Locate = "fast"
		_, err = api.NewHandler(config)
		So(err, ShouldNotBeNil)
	})
}

func TestRejectedRequestsAreCounted(t *testing.T) {
	Convey("Requests rejected before decoding", t, func() {
		gin.SetMode(gin.TestMode)
		r, _ := newTestRouter(64)

		scrape := func() string {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			return w.Body.String()
		}

		Convey("Invalid where expression", func() {
			So(post(r, "/api/v1/decode/points?where=x+%2B+1", nil).Code, ShouldEqual, http.StatusBadRequest)
			out := scrape()
			So(out, ShouldContainSubstring, `lxob_decode_errors_total{kind="other"} 1`)
			So(out, ShouldContainSubstring, `lxob_decode_duration_seconds_count{operation="points"} 1`)
		})

		Convey("Bad locate query", func() {
			So(post(r, "/api/v1/decode?locate=fast", nil).Code, ShouldEqual, http.StatusBadRequest)
			So(scrape(), ShouldContainSubstring, `lxob_decode_duration_seconds_count{operation="decode"} 1`)
		})

		Convey("Body too large", func() {
			So(post(r, "/api/v1/decode/chunks", testFile()).Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			out := scrape()
			So(out, ShouldContainSubstring, `lxob_decode_total{result="error"} 1`)
			So(out, ShouldContainSubstring, `lxob_decode_duration_seconds_count{operation="chunks"} 1`)
		})
	})
}
