package node

import "context"

// Amounts cross the wire as decimal strings; the node rejects JSON numbers
// above 2^53.

type SendArgs struct {
	Username string `json:"username"`
	Password string `json:"password"`
	AssetID  string `json:"assetID"`
	Amount   string `json:"amount"`
	To       string `json:"to"`
}

type TxIDReply struct {
	TxID string `json:"txID"`
}

type BalanceReply struct {
	Balance string `json:"balance"`
}

type AddressReply struct {
	Address string `json:"address"`
}

type AddressesReply struct {
	Addresses []string `json:"addresses"`
}

type TxStatusReply struct {
	Status string `json:"status"`
}

type FixedCapAssetArgs struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Denomination   int64  `json:"denomination"`
	InitialHolders any    `json:"initialHolders,omitempty"`
}

type AssetIDReply struct {
	AssetID string `json:"assetID"`
}

type UserArgs struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UsersReply struct {
	Users []string `json:"users"`
}

type SuccessReply struct {
	Success bool `json:"success"`
}

type BlockchainInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SubnetID string `json:"subnetID"`
	VMID     string `json:"vmID"`
}

type BlockchainsReply struct {
	Blockchains []BlockchainInfo `json:"blockchains"`
}

type SampleValidatorsArgs struct {
	Size int64 `json:"size"`
}

type ValidatorsReply struct {
	Validators []string `json:"validators"`
}

type AddValidatorArgs struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NodeID      string `json:"nodeID"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	StakeAmount string `json:"stakeAmount"`
	Destination string `json:"destination"`
}

type NodeIDReply struct {
	NodeID string `json:"nodeID"`
}

type NetworkIDReply struct {
	NetworkID string `json:"networkID"`
}

type PeerInfo struct {
	ID      string `json:"id"`
	IP      string `json:"ip"`
	Version string `json:"version"`
}

type PeersReply struct {
	Peers []PeerInfo `json:"peers"`
}

type AliasArgs struct {
	Endpoint string `json:"endpoint"`
	Alias    string `json:"alias"`
}

type LivenessReply struct {
	Healthy bool           `json:"healthy"`
	Checks  map[string]any `json:"checks,omitempty"`
}

func (c *Client) Send(ctx context.Context, args SendArgs) (TxIDReply, error) {
	var reply TxIDReply
	err := c.Call(ctx, EndpointAVM, "avm.send", args, &reply)
	return reply, err
}

func (c *Client) GetBalance(ctx context.Context, address, assetID string) (BalanceReply, error) {
	var reply BalanceReply
	params := map[string]string{"address": address, "assetID": assetID}
	err := c.Call(ctx, EndpointAVM, "avm.getBalance", params, &reply)
	return reply, err
}

func (c *Client) CreateAddress(ctx context.Context, user UserArgs) (AddressReply, error) {
	var reply AddressReply
	err := c.Call(ctx, EndpointAVM, "avm.createAddress", user, &reply)
	return reply, err
}

func (c *Client) ListAddresses(ctx context.Context, user UserArgs) (AddressesReply, error) {
	var reply AddressesReply
	err := c.Call(ctx, EndpointAVM, "avm.listAddresses", user, &reply)
	return reply, err
}

func (c *Client) GetTxStatus(ctx context.Context, txID string) (TxStatusReply, error) {
	var reply TxStatusReply
	params := map[string]string{"txID": txID}
	err := c.Call(ctx, EndpointAVM, "avm.getTxStatus", params, &reply)
	return reply, err
}

func (c *Client) CreateFixedCapAsset(ctx context.Context, args FixedCapAssetArgs) (AssetIDReply, error) {
	var reply AssetIDReply
	err := c.Call(ctx, EndpointAVM, "avm.createFixedCapAsset", args, &reply)
	return reply, err
}

func (c *Client) CreateUser(ctx context.Context, user UserArgs) (SuccessReply, error) {
	var reply SuccessReply
	err := c.Call(ctx, EndpointKeystore, "keystore.createUser", user, &reply)
	return reply, err
}

func (c *Client) ListUsers(ctx context.Context) (UsersReply, error) {
	var reply UsersReply
	err := c.Call(ctx, EndpointKeystore, "keystore.listUsers", map[string]string{}, &reply)
	return reply, err
}

func (c *Client) DeleteUser(ctx context.Context, user UserArgs) (SuccessReply, error) {
	var reply SuccessReply
	err := c.Call(ctx, EndpointKeystore, "keystore.deleteUser", user, &reply)
	return reply, err
}

func (c *Client) GetBlockchains(ctx context.Context) (BlockchainsReply, error) {
	var reply BlockchainsReply
	err := c.Call(ctx, EndpointPlatform, "platform.getBlockchains", map[string]string{}, &reply)
	return reply, err
}

func (c *Client) SampleValidators(ctx context.Context, size int64) (ValidatorsReply, error) {
	var reply ValidatorsReply
	err := c.Call(ctx, EndpointPlatform, "platform.sampleValidators", SampleValidatorsArgs{Size: size}, &reply)
	return reply, err
}

func (c *Client) AddValidator(ctx context.Context, args AddValidatorArgs) (TxIDReply, error) {
	var reply TxIDReply
	err := c.Call(ctx, EndpointPlatform, "platform.addValidator", args, &reply)
	return reply, err
}

func (c *Client) GetNodeID(ctx context.Context) (NodeIDReply, error) {
	var reply NodeIDReply
	err := c.Call(ctx, EndpointAdmin, "admin.getNodeID", map[string]string{}, &reply)
	return reply, err
}

func (c *Client) GetNetworkID(ctx context.Context) (NetworkIDReply, error) {
	var reply NetworkIDReply
	err := c.Call(ctx, EndpointAdmin, "admin.getNetworkID", map[string]string{}, &reply)
	return reply, err
}

func (c *Client) Peers(ctx context.Context) (PeersReply, error) {
	var reply PeersReply
	err := c.Call(ctx, EndpointAdmin, "admin.peers", map[string]string{}, &reply)
	return reply, err
}

func (c *Client) Alias(ctx context.Context, args AliasArgs) (SuccessReply, error) {
	var reply SuccessReply
	err := c.Call(ctx, EndpointAdmin, "admin.alias", args, &reply)
	return reply, err
}

func (c *Client) GetLiveness(ctx context.Context) (LivenessReply, error) {
	var reply LivenessReply
	err := c.Call(ctx, EndpointHealth, "health.getLiveness", map[string]string{}, &reply)
	return reply, err
}
