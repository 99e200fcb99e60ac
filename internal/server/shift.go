package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shift/internal/ctxlog"
	"shift/internal/shift"
)

type shiftRequest struct {
	Text          string `json:"text"`
	Positions     *int   `json:"positions"`
	Direction     string `json:"direction"`
	IgnoreNumbers bool   `json:"ignoreNumbers"`
	IgnoreLetters bool   `json:"ignoreLetters"`
	Range         []int  `json:"range"`
}

type shiftResponse struct {
	Result string `json:"result"`
	Letter string `json:"letter"`
	Number int    `json:"number"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	content, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(status)
	if _, err := w.Write(content); err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

func shiftHandler(maxBody int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := ctxlog.Get(r.Context())

		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
		dec.DisallowUnknownFields()

		var req shiftRequest
		if err := dec.Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		dir, err := shift.ParseDirection(req.Direction)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		rng, err := shift.NewRange(req.Range)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		opts := shift.Options{
			Positions: 1,
			Direction: dir,
		}
		if req.Positions != nil {
			opts.Positions = *req.Positions
		}
		if req.IgnoreNumbers {
			opts.Ignore |= shift.IgnoreNumbers
		}
		if req.IgnoreLetters {
			opts.Ignore |= shift.IgnoreLetters
		}

		s := shift.New(rng)
		res, err := s.Transform(req.Text, opts)
		if errors.Is(err, shift.ErrNotInRange) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err != nil {
			log.Error("shift failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		st := s.State()
		writeJSON(w, r, http.StatusOK, shiftResponse{
			Result: res,
			Letter: string(st.Letter),
			Number: st.Number,
		})
	})
}

func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}
