package get_provider_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	"github.com/m04kA/SMC-SessionsService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(
	providerID, userID int64,
	serviceIDStr, statusStr, startDateStr, endDateStr, onlyPendingStr, includeInactiveStr string,
) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{
		UserID:     userID,
		ProviderID: providerID,
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if onlyPendingStr != "" {
		onlyPending, err := strconv.ParseBool(onlyPendingStr)
		if err != nil {
			return nil, err
		}
		req.OnlyPending = onlyPending
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
