package handler

import (
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/collection"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
)

func toStatusError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidSurname),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrInvalidDepartment),
		errors.Is(err, employee.ErrInvalidSalary),
		errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrInvalidCompanyID),
		errors.Is(err, employee.ErrEmptyPatch),
		errors.Is(err, company.ErrInvalidID),
		errors.Is(err, company.ErrInvalidName),
		errors.Is(err, company.ErrInvalidCoordinates),
		errors.Is(err, company.ErrInvalidTotalEmployees),
		errors.Is(err, company.ErrEmptyPatch),
		errors.Is(err, location.ErrInvalidID),
		errors.Is(err, location.ErrInvalidName),
		errors.Is(err, location.ErrInvalidKind),
		errors.Is(err, location.ErrInvalidCoordinates),
		errors.Is(err, location.ErrEmptyPatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, location.ErrLocationNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func encode[T any](v *T) (*structpb.Struct, error) {
	if v == nil {
		return nil, status.Error(codes.Internal, "empty result")
	}
	out, err := collection.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func encodeList[T any](items []*T) (*structpb.ListValue, error) {
	values := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			values = append(values, *item)
		}
	}
	out, err := collection.EncodeList(values)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
