package checkout

import "errors"

// Workflow error kinds. The messages are part of the external contract and
// are kept verbatim from the legacy service, typos included.
var (
	ErrCustomerNotFound = errors.New("Customer does not exists")
	ErrProductNotFound  = errors.New("Product not found!")
	ErrOutOfStock       = errors.New("Product Out of stock")
)
