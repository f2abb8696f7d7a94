package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Role records a role name under the key "role".
func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

// Plan records a subscription plan tier under the key "plan".
func Plan(plan any) slog.Attr {
	if plan == nil {
		return slog.Attr{}
	}
	return slog.Any("plan", plan)
}

// Feature records a metered feature name under the key "feature".
func Feature(feature any) slog.Attr {
	if feature == nil {
		return slog.Attr{}
	}
	return slog.Any("feature", feature)
}
