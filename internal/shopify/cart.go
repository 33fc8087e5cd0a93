package shopify

import (
	"context"
	"strings"

	"storefront/internal/domain"
)

type cartNode struct {
	ID            string                      `json:"id"`
	CheckoutURL   string                      `json:"checkoutUrl"`
	TotalQuantity int                         `json:"totalQuantity"`
	Cost          domain.CartCost             `json:"cost"`
	BuyerIdentity *domain.BuyerIdentity       `json:"buyerIdentity"`
	Attributes    []domain.Attribute          `json:"attributes"`
	Lines         connection[domain.CartLine] `json:"lines"`
}

func (n *cartNode) toDomain() *domain.Cart {
	if n == nil {
		return nil
	}
	cart := &domain.Cart{
		ID:            n.ID,
		CheckoutURL:   n.CheckoutURL,
		TotalQuantity: n.TotalQuantity,
		Cost:          n.Cost,
		Attributes:    n.Attributes,
		Lines:         n.Lines.slice(),
	}
	if n.BuyerIdentity != nil {
		cart.BuyerIdentity = *n.BuyerIdentity
	}
	if cart.Attributes == nil {
		cart.Attributes = []domain.Attribute{}
	}
	return cart
}

type cartPayload struct {
	Cart       *cartNode   `json:"cart"`
	UserErrors []userError `json:"userErrors"`
}

// result converts a mutation payload into a cart or a classified error.
func (p *cartPayload) result(op string) (*domain.Cart, error) {
	if p == nil {
		return nil, &Error{Kind: KindValidation, Op: op, Message: "Unknown error"}
	}
	if err := userErrorsToError(op, p.UserErrors); err != nil {
		return nil, err
	}
	if p.Cart == nil {
		return nil, &Error{Kind: KindValidation, Op: op, Message: "Unknown error"}
	}
	return p.Cart.toDomain(), nil
}

type lineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

type lineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// GetCart fetches a cart in the given country context. It returns nil without
// error when cartID is empty or the platform no longer knows the cart.
func (c *Client) GetCart(ctx context.Context, cartID, countryCode string) (*domain.Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, nil
	}
	var data struct {
		Cart *cartNode `json:"cart"`
	}
	err := c.do(ctx, "getCart", cartQuery, map[string]any{
		"cartId":  cartID,
		"country": toCountry(countryCode),
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.Cart.toDomain(), nil
}

// CreateCart creates a cart holding a single line. The buyer identity is set
// when a country is known so prices come back in its currency.
func (c *Client) CreateCart(ctx context.Context, merchandiseID string, quantity int, countryCode string) (*domain.Cart, error) {
	vars := map[string]any{
		"lines":   []lineInput{{MerchandiseID: merchandiseID, Quantity: quantity}},
		"country": toCountry(countryCode),
	}
	if country := toCountry(countryCode); country != nil {
		vars["buyerIdentity"] = map[string]any{"countryCode": country}
	}
	var data struct {
		CartCreate *cartPayload `json:"cartCreate"`
	}
	if err := c.do(ctx, "createCart", cartCreateMutation, vars, &data); err != nil {
		return nil, err
	}
	return data.CartCreate.result("createCart")
}

func (c *Client) AddToCart(ctx context.Context, cartID, merchandiseID string, quantity int, countryCode string) (*domain.Cart, error) {
	var data struct {
		CartLinesAdd *cartPayload `json:"cartLinesAdd"`
	}
	err := c.do(ctx, "addToCart", cartLinesAddMutation, map[string]any{
		"cartId":  cartID,
		"lines":   []lineInput{{MerchandiseID: merchandiseID, Quantity: quantity}},
		"country": toCountry(countryCode),
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.CartLinesAdd.result("addToCart")
}

func (c *Client) UpdateCartLine(ctx context.Context, cartID, lineID string, quantity int, countryCode string) (*domain.Cart, error) {
	var data struct {
		CartLinesUpdate *cartPayload `json:"cartLinesUpdate"`
	}
	err := c.do(ctx, "updateCartLine", cartLinesUpdateMutation, map[string]any{
		"cartId":  cartID,
		"lines":   []lineUpdateInput{{ID: lineID, Quantity: quantity}},
		"country": toCountry(countryCode),
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.CartLinesUpdate.result("updateCartLine")
}

func (c *Client) RemoveFromCart(ctx context.Context, cartID string, lineIDs []string, countryCode string) (*domain.Cart, error) {
	var data struct {
		CartLinesRemove *cartPayload `json:"cartLinesRemove"`
	}
	err := c.do(ctx, "removeFromCart", cartLinesRemoveMutation, map[string]any{
		"cartId":  cartID,
		"lineIds": lineIDs,
		"country": toCountry(countryCode),
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.CartLinesRemove.result("removeFromCart")
}

// UpdateCartCountry moves the cart's buyer identity to another country. The
// returned cart is priced in that country's currency.
func (c *Client) UpdateCartCountry(ctx context.Context, cartID, countryCode string) (*domain.Cart, error) {
	var data struct {
		CartBuyerIdentityUpdate *cartPayload `json:"cartBuyerIdentityUpdate"`
	}
	err := c.do(ctx, "updateCartCountry", cartBuyerIdentityUpdateMutation, map[string]any{
		"cartId":        cartID,
		"buyerIdentity": map[string]any{"countryCode": toCountry(countryCode)},
		"country":       toCountry(countryCode),
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.CartBuyerIdentityUpdate.result("updateCartCountry")
}
