package company

import "errors"

var (
	// ErrCompanyNotFound は会社が存在しない場合に返却されます。
	ErrCompanyNotFound = errors.New("company not found")
	// ErrInvalidName は会社名が不正な場合に返却されます。
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidCoordinates は緯度・経度が範囲外の場合に返却されます。
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrInvalidTotalEmployees は社員数が負の場合に返却されます。
	ErrInvalidTotalEmployees = errors.New("invalid total employees")
	// ErrEmptyPatch は更新内容が無い場合に返却されます。
	ErrEmptyPatch = errors.New("nothing to update")
)
