package shopify

import (
	"context"

	"storefront/internal/domain"
)

type customerNode struct {
	ID             string                             `json:"id"`
	FirstName      string                             `json:"firstName"`
	LastName       string                             `json:"lastName"`
	Email          string                             `json:"email"`
	Phone          string                             `json:"phone"`
	DefaultAddress *domain.CustomerAddress            `json:"defaultAddress"`
	Addresses      connection[domain.CustomerAddress] `json:"addresses"`
	Orders         connection[orderNode]              `json:"orders"`
}

type orderNode struct {
	ID                string                       `json:"id"`
	Name              string                       `json:"name"`
	OrderNumber       int                          `json:"orderNumber"`
	ProcessedAt       string                       `json:"processedAt"`
	FinancialStatus   string                       `json:"financialStatus"`
	FulfillmentStatus string                       `json:"fulfillmentStatus"`
	TotalPrice        domain.Money                 `json:"totalPrice"`
	LineItems         connection[domain.OrderLine] `json:"lineItems"`
}

func (n *customerNode) toDomain() *domain.Customer {
	if n == nil {
		return nil
	}
	orders := make([]domain.Order, 0, len(n.Orders))
	for _, o := range n.Orders {
		orders = append(orders, domain.Order{
			ID:                o.ID,
			Name:              o.Name,
			OrderNumber:       o.OrderNumber,
			ProcessedAt:       o.ProcessedAt,
			FinancialStatus:   o.FinancialStatus,
			FulfillmentStatus: o.FulfillmentStatus,
			TotalPrice:        o.TotalPrice,
			Lines:             o.LineItems.slice(),
		})
	}
	return &domain.Customer{
		ID:             n.ID,
		FirstName:      n.FirstName,
		LastName:       n.LastName,
		Email:          n.Email,
		Phone:          n.Phone,
		DefaultAddress: n.DefaultAddress,
		Addresses:      n.Addresses.slice(),
		Orders:         orders,
	}
}

// RecoverCustomer asks the platform to email a password reset link.
// Customer user errors, such as an unknown email, are logged and not
// returned so callers cannot tell whether the account exists.
func (c *Client) RecoverCustomer(ctx context.Context, email string) error {
	var data struct {
		CustomerRecover *struct {
			CustomerUserErrors []userError `json:"customerUserErrors"`
		} `json:"customerRecover"`
	}
	if err := c.do(ctx, "recoverCustomer", customerRecoverMutation, map[string]any{"email": email}, &data); err != nil {
		return err
	}
	if data.CustomerRecover != nil {
		for _, ue := range data.CustomerRecover.CustomerUserErrors {
			c.logger.Printf("shopify: recoverCustomer user error code=%s message=%q", ue.Code, ue.Message)
		}
	}
	return nil
}

// Customer loads the account behind an access token. A token the platform
// does not accept yields ErrUnauthorized.
func (c *Client) Customer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	var data struct {
		Customer *customerNode `json:"customer"`
	}
	if err := c.do(ctx, "customer", customerQuery, map[string]any{"token": accessToken}, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, &Error{Kind: KindUnauthorized, Op: "customer", Message: "customer session expired"}
	}
	return data.Customer.toDomain(), nil
}
