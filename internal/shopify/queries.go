package shopify

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
  }
  lines(first: 50) {
    edges {
      node {
        id
        quantity
        cost {
          subtotalAmount { amount currencyCode }
          totalAmount { amount currencyCode }
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            availableForSale
            price { amount currencyCode }
            selectedOptions { name value }
            product {
              id
              title
              handle
              featuredImage { url altText width height }
            }
            image { url altText }
          }
        }
        attributes { key value }
      }
    }
  }
  buyerIdentity { email countryCode }
  attributes { key value }
}
`

const cartQuery = `
query Cart($cartId: ID!, $country: CountryCode) @inContext(country: $country) {
  cart(id: $cartId) { ...CartFields }
}
` + cartFragment

const cartCreateMutation = `
mutation CartCreate($lines: [CartLineInput!], $buyerIdentity: CartBuyerIdentityInput, $country: CountryCode) @inContext(country: $country) {
  cartCreate(input: { lines: $lines, buyerIdentity: $buyerIdentity }) {
    cart { ...CartFields }
    userErrors { field message code }
  }
}
` + cartFragment

const cartBuyerIdentityUpdateMutation = `
mutation CartBuyerIdentityUpdate($cartId: ID!, $buyerIdentity: CartBuyerIdentityInput!, $country: CountryCode) @inContext(country: $country) {
  cartBuyerIdentityUpdate(cartId: $cartId, buyerIdentity: $buyerIdentity) {
    cart { ...CartFields }
    userErrors { field message code }
  }
}
` + cartFragment

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!, $country: CountryCode) @inContext(country: $country) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    userErrors { field message code }
  }
}
` + cartFragment

const cartLinesUpdateMutation = `
mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!, $country: CountryCode) @inContext(country: $country) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    userErrors { field message code }
  }
}
` + cartFragment

const cartLinesRemoveMutation = `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!, $country: CountryCode) @inContext(country: $country) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...CartFields }
    userErrors { field message code }
  }
}
` + cartFragment

const productsByHandlesQuery = `
query ProductsByHandles($query: String!, $country: CountryCode) @inContext(country: $country) {
  products(first: 10, query: $query) {
    edges {
      node {
        handle
        title
        featuredImage { url altText }
        images(first: 2) { edges { node { url altText } } }
        priceRange { minVariantPrice { amount currencyCode } }
        variants(first: 1) {
          edges { node { id availableForSale price { amount currencyCode } } }
        }
      }
    }
  }
}
`

const customerRecoverMutation = `
mutation CustomerRecover($email: String!) {
  customerRecover(email: $email) {
    customerUserErrors { field message code }
  }
}
`

const customerQuery = `
query Customer($token: String!) {
  customer(customerAccessToken: $token) {
    id
    firstName
    lastName
    email
    phone
    defaultAddress { id firstName lastName address1 address2 city province country countryCodeV2 zip phone }
    addresses(first: 20) {
      edges { node { id firstName lastName address1 address2 city province country countryCodeV2 zip phone } }
    }
    orders(first: 20, sortKey: PROCESSED_AT, reverse: true) {
      edges {
        node {
          id
          name
          orderNumber
          processedAt
          financialStatus
          fulfillmentStatus
          totalPrice { amount currencyCode }
          lineItems(first: 20) {
            edges {
              node {
                title
                quantity
                variant { title price { amount currencyCode } image { url altText } }
              }
            }
          }
        }
      }
    }
  }
}
`
