package grammar

import "errors"

// ErrMissingAugmentation is returned (optionally wrapped) when an operation
// that requires an augmented grammar -- one carrying the reserved Start
// nonterminal and $ terminal added by Augment -- is given one that isn't.
var ErrMissingAugmentation = errors.New("grammar lacks reserved Start/$ augmentation entries")
