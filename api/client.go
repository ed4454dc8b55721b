package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"lob/api/wire"
)

// Client is a thin lob.Query caller over the lobwire codec.
type Client struct {
	conn *grpc.ClientConn
}

func Dial(target string) (*Client, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(wire.Codec{})),
	)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, reply wire.Message) error {
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, req, reply)
}

func (c *Client) BestBidOffer(ctx context.Context) (*wire.BBOReply, error) {
	reply := new(wire.BBOReply)
	if err := c.invoke(ctx, "BestBidOffer", &wire.BBORequest{}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) Level(ctx context.Context, side uint32, n uint32) (*wire.LevelReply, error) {
	reply := new(wire.LevelReply)
	if err := c.invoke(ctx, "Level", &wire.LevelRequest{Side: side, N: n}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *Client) Totals(ctx context.Context, kind uint32) (*wire.TotalsReply, error) {
	reply := new(wire.TotalsReply)
	if err := c.invoke(ctx, "Totals", &wire.TotalsRequest{Kind: kind}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// Depth fetches one symbol's depth; an empty symbol selects the symbol
// with the largest combined remaining volume.
func (c *Client) Depth(ctx context.Context, symbol string) (*wire.DepthReply, error) {
	reply := new(wire.DepthReply)
	if err := c.invoke(ctx, "Depth", &wire.DepthRequest{Symbol: symbol}, reply); err != nil {
		return nil, err
	}
	return reply, nil
}
