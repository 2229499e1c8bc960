package models

import "travelapp-backend/apperrors"

func errNegative(field string) error {
	return apperrors.Validation(field, "ensure this value is greater than or equal to 0")
}
