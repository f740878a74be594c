// Package core defines the domain model and contracts shared by the
// PayPal Plus gateway connector: credentials, payment intents, executed
// payments, checkout sources, configuration, and the transport/store
// interfaces the other packages implement.
package core
