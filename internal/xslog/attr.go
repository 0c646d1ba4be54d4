package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/moodly/internal/version"
	"github.com/garrettladley/moodly/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func ClientVersion(clientVersion string) slog.Attr {
	const clientVersionKey = "client_version"
	return slog.String(clientVersionKey, clientVersion)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func UserID(id int64) slog.Attr {
	const userIDKey = "user_id"
	return slog.Int64(userIDKey, id)
}

func Username(username string) slog.Attr {
	const usernameKey = "username"
	return slog.String(usernameKey, username)
}

func EntryID(id int64) slog.Attr {
	const entryIDKey = "entry_id"
	return slog.Int64(entryIDKey, id)
}

func GoalID(id int64) slog.Attr {
	const goalIDKey = "goal_id"
	return slog.Int64(goalIDKey, id)
}

func Exercise(name string) slog.Attr {
	const exerciseKey = "exercise"
	return slog.String(exerciseKey, name)
}

func Phase(phase string) slog.Attr {
	const phaseKey = "phase"
	return slog.String(phaseKey, phase)
}

func Cycle(cycle int) slog.Attr {
	const cycleKey = "cycle"
	return slog.Int(cycleKey, cycle)
}

func MoodCategory(category string) slog.Attr {
	const moodCategoryKey = "mood_category"
	return slog.String(moodCategoryKey, category)
}

func Source(source string) slog.Attr {
	const sourceKey = "source"
	return slog.String(sourceKey, source)
}

func Driver(driver string) slog.Attr {
	const driverKey = "driver"
	return slog.String(driverKey, driver)
}

func Model(model string) slog.Attr {
	const modelKey = "model"
	return slog.String(modelKey, model)
}
