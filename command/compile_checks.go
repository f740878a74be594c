package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreatePaymentMessage]    = (*CreatePaymentCommand)(nil)
	_ gocmd.Commander[ExecutePaymentMessage]   = (*ExecutePaymentCommand)(nil)
	_ gocmd.Commander[CreateWebProfileMessage] = (*CreateWebProfileCommand)(nil)
	_ gocmd.Commander[DeleteWebProfileMessage] = (*DeleteWebProfileCommand)(nil)
)
