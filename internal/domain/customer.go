package domain

// CustomerAddress is a saved address as returned by the platform.
type CustomerAddress struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Address1    string `json:"address1,omitempty"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCodeV2,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Customer is the signed-in shopper's account overview.
type Customer struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"firstName,omitempty"`
	LastName       string            `json:"lastName,omitempty"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone,omitempty"`
	DefaultAddress *CustomerAddress  `json:"defaultAddress,omitempty"`
	Addresses      []CustomerAddress `json:"addresses"`
	Orders         []Order           `json:"orders"`
}

type Order struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	OrderNumber       int         `json:"orderNumber"`
	ProcessedAt       string      `json:"processedAt"`
	FinancialStatus   string      `json:"financialStatus,omitempty"`
	FulfillmentStatus string      `json:"fulfillmentStatus,omitempty"`
	TotalPrice        Money       `json:"totalPrice"`
	Lines             []OrderLine `json:"lineItems"`
}

type OrderLine struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Variant  *struct {
		Title string `json:"title"`
		Price Money  `json:"price"`
		Image *Image `json:"image,omitempty"`
	} `json:"variant,omitempty"`
}
