package selection

import "pickgrip/internal/domain"

// ReconcileFunc rebuilds the tag list from the current selection
type ReconcileFunc func(selected []domain.Option)

// DefaultMultipleMessage is shown when several options are selected outside
// tag mode. %d is replaced with the number of selected options.
const DefaultMultipleMessage = "%d selected"
