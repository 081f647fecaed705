package swap

import (
	"fmt"

	"github.com/vulpemventures/go-elements/psetv2"
)

// CompleteOpts is the struct given to the Complete method.
type CompleteOpts struct {
	Accept      *SwapAccept
	Transaction string
}

// Complete returns a new SwapComplete message finalizing the given accepted
// swap with the signed transaction.
func Complete(opts CompleteOpts) (*SwapComplete, error) {
	if opts.Accept == nil {
		return nil, fmt.Errorf("swap accept message must not be null")
	}
	if _, err := psetv2.NewPsetFromBase64(opts.Transaction); err != nil {
		return nil, fmt.Errorf("invalid swap transaction format")
	}

	return &SwapComplete{
		ID:          newID(),
		AcceptID:    opts.Accept.ID,
		Transaction: opts.Transaction,
	}, nil
}
