// Файл: internal/dto/claims_dto.go
package dto

import "restaurant-pos/pkg/constants"

// StaffClaims - то, что middleware кладет в контекст запроса.
type StaffClaims struct {
	Role constants.StaffRole
}
