package logger

import (
	"log/slog"
	"strconv"
)

// Group bundles attributes under one key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func NotificationID(id string) slog.Attr {
	return slog.String("notification_id", id)
}

func Severity(s string) slog.Attr {
	return slog.String("severity", s)
}

func UploadID(id string) slog.Attr {
	return slog.String("upload_id", id)
}

func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

func Modal(name string) slog.Attr {
	return slog.String("modal", name)
}

func Metric(name string) slog.Attr {
	return slog.String("metric", name)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}
