package server

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/util"
)

type ErrorDetails struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Type    errx.Type `json:"type"`
}

type JsonResponseWrapper struct {
	Success bool                `json:"success"`
	Data    jsoniter.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetails       `json:"error,omitempty"`
}

func writeJson(w http.ResponseWriter, r *http.Request, status int, data any, err errx.Error) {
	wrapper := JsonResponseWrapper{Success: err == nil}
	if data != nil {
		raw, e := util.Json().Marshal(data)
		if e != nil {
			logrus.WithContext(r.Context()).WithError(e).Error("failed to marshal json response")
			status, err = http.StatusInternalServerError, e
		} else {
			wrapper.Data = raw
		}
	}
	if err != nil {
		wrapper.Success = false
		wrapper.Data = nil
		details := &ErrorDetails{Code: err.Code(), Type: err.Type()}
		if err.Type() != errx.TypeInternal {
			details.Message = err.Error()
		}
		wrapper.Error = details
		setError(w, err)
	}
	body, e := util.Json().Marshal(wrapper)
	if e != nil {
		logrus.WithContext(r.Context()).WithError(e).Error("failed to marshal json response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, e := w.Write(body); e != nil {
		logrus.WithContext(r.Context()).WithError(e).Error("write response failed")
	}
}
