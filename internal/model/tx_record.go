package model

// TxRecord is the journal row written for every transaction the CLI builds.
type TxRecord struct {
	Kind        string   `json:"kind"`
	ChainID     uint64   `json:"chain_id"`
	To          string   `json:"to"`
	Data        string   `json:"data"`
	Value       string   `json:"value"`
	Deadline    int64    `json:"deadline,omitempty"`
	Path        []string `json:"path,omitempty"`
	AmountIn    string   `json:"amount_in,omitempty"`
	AmountOut   string   `json:"amount_out,omitempty"`
	SlippageBps uint32   `json:"slippage_bps,omitempty"`
	CreatedAt   string   `json:"created_at"`
}
