package errors

import "net/http"

var (
	ErrDuplicateMarkerID = New(
		"DUPLICATE_MARKER_ID",
		"Marker with this id already exists",
		http.StatusConflict,
	)

	ErrMarkerNotFound = New(
		"MARKER_NOT_FOUND",
		"Marker not found",
		http.StatusNotFound,
	)

	ErrInvalidTransition = New(
		"INVALID_TRANSITION",
		"Event is not allowed in the current state",
		http.StatusConflict,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Unknown marker category",
		http.StatusBadRequest,
	)

	ErrInvalidIconScale = New(
		"INVALID_ICON_SCALE",
		"Icon scale exponent must be within [0.5, 10] with step 0.5",
		http.StatusBadRequest,
	)

	ErrInvalidResolution = New(
		"INVALID_RESOLUTION",
		"Resolution must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Invalid geometry provided",
		http.StatusBadRequest,
	)

	ErrInvalidSelectionMode = New(
		"INVALID_SELECTION_MODE",
		"Unknown selection mode",
		http.StatusBadRequest,
	)

	ErrWorkspaceStopped = New(
		"WORKSPACE_STOPPED",
		"Map workspace is not running",
		http.StatusServiceUnavailable,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
