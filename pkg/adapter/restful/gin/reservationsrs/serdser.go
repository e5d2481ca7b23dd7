package reservationsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/model"
)

type createReq struct {
	UserID    int64  `json:"user_id" binding:"required,gt=0"`
	CarID     int64  `json:"car_id" binding:"required,gt=0"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type listReq struct {
	Limit  int `form:"limit" binding:"omitempty,min=1"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type getReq struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

type reservationResp struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	CarID     int64     `json:"car_id"`
	UserID    int64     `json:"user_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DserCreateReq binds and validates the json body of a reservation
// request. In case of errors, a 400 response is written and nil is
// returned.
func (rs *resource) DserCreateReq(c *gin.Context) *model.Selection {
	req := &createReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	start, err := model.ParseDate(req.StartDate)
	serdser.Assert(&errs, err == nil, "start_date", "Invalid date.")
	end, err := model.ParseDate(req.EndDate)
	serdser.Assert(&errs, err == nil, "end_date", "Invalid date.")
	if errs == nil {
		serdser.Assert(&errs, !end.Before(start), "end_date",
			"The end_date must not be before the start_date.",
		)
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &model.Selection{
		UserID:    req.UserID,
		CarID:     req.CarID,
		StartDate: start,
		EndDate:   end,
	}
}

func SerReservation(r *model.Reservation) *reservationResp {
	return &reservationResp{
		ID:        r.ID,
		UUID:      r.UUID.String(),
		CarID:     r.CarID,
		UserID:    r.UserID,
		StartDate: model.FormatDate(r.StartDate),
		EndDate:   model.FormatDate(r.EndDate),
		Status:    string(r.Status),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
