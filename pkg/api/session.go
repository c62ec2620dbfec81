package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/openswoop/cgpa/pkg/app"
	"github.com/openswoop/cgpa/pkg/report"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
)

type sessionApi struct {
	tracker  *app.Tracker
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, tracker *app.Tracker, validate *validator.Validate) {
	api := sessionApi{
		tracker:  tracker,
		validate: validate,
	}

	g.GET("/session", api.retrieve)
	g.POST("/reset", api.reset)
	g.POST("/import", api.importBackup)
	g.GET("/export", api.export)
	g.GET("/chart.svg", api.chart)
	g.GET("/report.csv", api.csv)

	sg := g.Group("/semesters")
	sg.POST("", api.addSemester)
	sg.DELETE("/:id", api.removeSemester)
	sg.POST("/:id/subjects", api.addSubject)
	sg.DELETE("/:id/subjects/:subjectId", api.removeSubject)
	sg.PATCH("/:id/subjects/:subjectId", api.updateSubject)
}

// UpdateRequest sets one field of a subject. Value may be a JSON string,
// number or boolean; it is applied in its text form.
type UpdateRequest struct {
	Field string          `json:"field" validate:"required,oneof=name credits grade marks isFR"`
	Value json.RawMessage `json:"value"`
}

func (r UpdateRequest) Text() string {
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	if len(r.Value) == 0 || string(r.Value) == "null" {
		return ""
	}
	return string(r.Value)
}

func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// Handlers

func (api *sessionApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.tracker.Summary())
}

func (api *sessionApi) addSemester(ctx echo.Context) error {
	return ctx.JSON(http.StatusCreated, api.tracker.AddSemester())
}

func (api *sessionApi) removeSemester(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	summary, err := api.tracker.RemoveSemester(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *sessionApi) addSubject(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	summary, err := api.tracker.AddSubject(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, summary)
}

func (api *sessionApi) removeSubject(ctx echo.Context) error {
	semID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	subID, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}
	summary, err := api.tracker.RemoveSubject(semID, subID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *sessionApi) updateSubject(ctx echo.Context) error {
	semID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	subID, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	var data UpdateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	summary, err := api.tracker.UpdateSubject(semID, subID, session.Field(data.Field), data.Text())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *sessionApi) reset(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.tracker.Reset())
}

func (api *sessionApi) importBackup(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}
	summary, err := api.tracker.Import(body)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *sessionApi) export(ctx echo.Context) error {
	data, err := api.tracker.Export()
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return attachment(ctx, session.ExportFileName, echo.MIMEApplicationJSONCharsetUTF8, data)
}

func (api *sessionApi) chart(ctx echo.Context) error {
	svg, ok := report.Chart(api.tracker.Summary().Trend)
	if !ok {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.Blob(http.StatusOK, "image/svg+xml", []byte(svg))
}

func (api *sessionApi) csv(ctx echo.Context) error {
	data, err := report.MarshalCsv(api.tracker.Summary())
	if err != nil {
		return err
	}
	return attachment(ctx, report.CsvFileName, "text/csv; charset=UTF-8", data)
}

func attachment(ctx echo.Context, name, contentType string, data []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return ctx.Blob(http.StatusOK, contentType, data)
}
