package raffle

// PrizeType categorizes what a prize slot pays out. It is display metadata
// only; the draw algorithm never looks at it.
type PrizeType int

const (
	PrizeEmpty PrizeType = iota
	PrizeAsset
	PrizeNFT
	PrizeToken
)

func (t PrizeType) String() string {
	switch t {
	case PrizeEmpty:
		return "empty"
	case PrizeAsset:
		return "asset"
	case PrizeNFT:
		return "nft"
	case PrizeToken:
		return "token"
	default:
		return "unknown"
	}
}

// Prize is one configured prize slot. Quantity is the number of tickets
// assigned to the slot and determines its win probability.
type Prize struct {
	ID        string    `json:"id"`
	Quantity  int       `json:"quantity"`
	UserValue float64   `json:"user_value"`
	PrizeType PrizeType `json:"prize_type"`
}

// TotalTickets sums the ticket quantities across all prizes.
func TotalTickets(prizes []Prize) int {
	total := 0
	for _, p := range prizes {
		total += p.Quantity
	}
	return total
}

// WinProbabilities returns the win probability of each prize, index-aligned
// with the input. A zero ticket pool yields all zeros.
func WinProbabilities(prizes []Prize) []float64 {
	probs := make([]float64, len(prizes))
	total := TotalTickets(prizes)
	if total == 0 {
		return probs
	}
	for i, p := range prizes {
		probs[i] = float64(p.Quantity) / float64(total)
	}
	return probs
}
