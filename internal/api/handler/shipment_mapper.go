package handler

import (
	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

func toOrder(req orderRequest) domain.Order {
	items := make([]domain.LineItem, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = domain.LineItem{Title: li.Title, Quantity: li.Quantity}
	}
	return domain.Order{
		ID:         req.ID,
		Name:       req.Name,
		TotalPrice: req.TotalPrice,
		Currency:   req.Currency,
		Customer: domain.Customer{
			ID:    req.Customer.ID,
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
		},
		ShippingAddress: domain.OrderAddress{
			Address1: req.ShippingAddress.Address1,
			Address2: req.ShippingAddress.Address2,
			City:     req.ShippingAddress.City,
			Province: req.ShippingAddress.Province,
			Phone:    req.ShippingAddress.Phone,
			Company:  req.ShippingAddress.Company,
		},
		LineItems: items,
	}
}

func toCreateShipmentInput(req createShipmentRequest) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		OrderID:            req.Order.ID,
		Shop:               req.Shop,
		Courier:            req.Courier,
		IsReturn:           req.IsReturn,
		PaymentType:        req.PaymentType,
		Order:              toOrder(req.Order),
		CityCode:           req.CityCode,
		DistrictCode:       req.DistrictCode,
		ExistingCustomerID: req.ExistingCustomerID,
		Override: ports.RecipientOverride{
			FullName: req.Override.FullName,
			Phone:    req.Override.Phone,
			Email:    req.Override.Email,
			Address:  req.Override.Address,
		},
	}
}

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	return shipmentResponse{
		ID:             s.ID,
		OrderID:        s.OrderID,
		Shop:           s.Shop,
		Courier:        s.Courier,
		IsReturn:       s.IsReturn,
		TrackingNumber: s.TrackingNumber,
		LabelURL:       s.LabelURL,
		Barcode:        s.Barcode,
		CityName:       s.CityName,
		DistrictName:   s.DistrictName,
		CreatedAt:      s.CreatedAt,
	}
}
