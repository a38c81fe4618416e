package internal

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/firodj/mipsword/bitstr"
	"github.com/firodj/mipsword/instruction"
	"github.com/firodj/mipsword/models"
)

const MIMEApplicationMsgpack = "application/msgpack"

type EncodeRequest struct {
	Format  string   `json:"format" msgpack:"format"`
	Fields  []string `json:"fields" msgpack:"fields"`
	Address uint32   `json:"address" msgpack:"address"`
}

type HistoryView struct {
	ID        string      `json:"id" msgpack:"id"`
	Address   uint32      `json:"address" msgpack:"address"`
	Format    string      `json:"format" msgpack:"format"`
	Hex       string      `json:"hex" msgpack:"hex"`
	Binary    string      `json:"binary" msgpack:"binary"`
	Source    string      `json:"source" msgpack:"source"`
	CreatedAt time.Time   `json:"created_at" msgpack:"created_at"`
	Fields    []FieldView `json:"fields" msgpack:"fields"`
}

type Server struct {
	repo   *SQLRepository
	logger *log.Logger
}

// NewServer wires the HTTP API on a fresh echo instance.
func NewServer(repo *SQLRepository, logger *log.Logger) *echo.Echo {
	s := &Server{
		repo:   repo,
		logger: logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "mipsword")
	})
	e.POST("/encode", s.encode)
	e.GET("/decode/:format/:hex", s.decode)
	e.GET("/convert/:op", s.convert)
	e.GET("/history", s.history)

	return e
}

func respond(c echo.Context, code int, v interface{}) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), MIMEApplicationMsgpack) {
		b, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}
		return c.Blob(code, MIMEApplicationMsgpack, b)
	}
	return c.JSON(code, v)
}

// failure maps codec errors onto 400 and leaves the rest to echo.
func failure(err error) error {
	if errors.Is(err, bitstr.ErrRange) || errors.Is(err, bitstr.ErrPrecondition) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func (s *Server) encode(c echo.Context) error {
	var req EncodeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	format, err := instruction.ParseFormat(req.Format)
	if err != nil {
		return failure(err)
	}
	values, err := ParseArguments(req.Fields)
	if err != nil {
		return failure(err)
	}
	instr, err := instruction.Encode(format, values)
	if err != nil {
		return failure(err)
	}

	return s.record(c, req.Address, instr, "encode")
}

func (s *Server) decode(c echo.Context) error {
	format, err := instruction.ParseFormat(c.Param("format"))
	if err != nil {
		return failure(err)
	}
	signed, err := queryBool(c, "signed")
	if err != nil {
		return err
	}

	instr, err := instruction.Decode(format, c.Param("hex"), bitstr.InterpretationOf(signed))
	if err != nil {
		return failure(err)
	}

	return s.record(c, 0, instr, "decode")
}

func (s *Server) record(c echo.Context, addr uint32, instr instruction.Instruction, source string) error {
	if _, err := s.repo.Save(c.Request().Context(), addr, instr, source); err != nil {
		return err
	}
	s.logger.Debugf("%s %s", source, instr)
	return respond(c, http.StatusOK, NewWordView(instr))
}

func queryBool(c echo.Context, name string) (bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, name+": "+err.Error())
	}
	return b, nil
}

func queryInt(c echo.Context, name string, def int64) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 0, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+": "+err.Error())
	}
	return n, nil
}

func (s *Server) convert(c echo.Context) error {
	signed, err := queryBool(c, "signed")
	if err != nil {
		return err
	}
	mode := bitstr.InterpretationOf(signed)

	result := map[string]interface{}{}
	switch c.Param("op") {
	case "dec2hex":
		v, err := queryInt(c, "value", 0)
		if err != nil {
			return err
		}
		n, err := queryInt(c, "len", instruction.WordDigits)
		if err != nil {
			return err
		}
		h, err := bitstr.DecimalToHex(v, int(n))
		if err != nil {
			return failure(err)
		}
		result["hex"] = h
	case "hex2dec":
		v, err := bitstr.HexToDecimal(c.QueryParam("hex"), mode)
		if err != nil {
			return failure(err)
		}
		result["value"] = v
	case "dec2bits":
		v, err := queryInt(c, "value", 0)
		if err != nil {
			return err
		}
		w, err := queryInt(c, "width", instruction.WordBits)
		if err != nil {
			return err
		}
		b, err := bitstr.FromDecimal(v, int(w))
		if err != nil {
			return failure(err)
		}
		result["bits"] = b.String()
	case "bits2dec":
		v, err := bitstr.ToDecimal(bitstr.Bits(c.QueryParam("bits")), mode)
		if err != nil {
			return failure(err)
		}
		result["value"] = v
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown conversion "+c.Param("op"))
	}

	return respond(c, http.StatusOK, result)
}

func (s *Server) history(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return err
	}

	var words []models.EncodedWord
	if hex := c.QueryParam("hex"); hex != "" {
		words, err = s.repo.FindByHex(c.Request().Context(), strings.ToLower(hex))
	} else {
		words, err = s.repo.List(c.Request().Context(), int(limit))
	}
	if err != nil {
		return err
	}

	views := make([]HistoryView, 0, len(words))
	for idx := range words {
		w := &words[idx]
		fields, err := DecodeFieldViews(w)
		if err != nil {
			return err
		}
		views = append(views, HistoryView{
			ID:        w.ID,
			Address:   w.Address,
			Format:    w.Format,
			Hex:       w.Hex,
			Binary:    w.Binary,
			Source:    w.Source,
			CreatedAt: w.CreatedAt,
			Fields:    fields,
		})
	}
	return respond(c, http.StatusOK, views)
}
