package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/strangelove-ventures/ata-devtool/types"
)

func TestAtaResultWithInstruction(t *testing.T) {
	body := `{
		"token": "USDC",
		"tokenMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"ownerPublicKey": "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
		"associatedToken": "8Yq3fXq3ZQwvq1dAqcqT8oWkz3cJX7SmdYgnHC2rWbCu",
		"status": "Account Created",
		"instruction": {
			"programId": "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL",
			"keys": [
				{"pubkey": "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", "isSigner": true, "isWritable": true},
				{"pubkey": "8Yq3fXq3ZQwvq1dAqcqT8oWkz3cJX7SmdYgnHC2rWbCu", "isSigner": false, "isWritable": true}
			]
		}
	}`

	var res types.AtaResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.False(t, res.Verified())

	ix, ok := res.Instruction.Get()
	require.True(t, ok)
	require.Equal(t, "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL", ix.ProgramID)
	require.Len(t, ix.Keys, 2)
	require.True(t, ix.Keys[0].IsSigner)
	require.False(t, ix.Keys[1].IsSigner)
	require.True(t, ix.Keys[1].IsWritable)
}

func TestAtaResultNullInstruction(t *testing.T) {
	var res types.AtaResult
	require.NoError(t, json.Unmarshal([]byte(`{"token":"SOL","status":"Account Exists","instruction":null}`), &res))
	require.True(t, res.Verified())
	require.False(t, res.Instruction.IsSome())

	res = types.AtaResult{}
	require.NoError(t, json.Unmarshal([]byte(`{"token":"SOL","status":"Account Exists"}`), &res))
	require.False(t, res.Instruction.IsSome())
}

func TestOptionMarshal(t *testing.T) {
	bz, err := json.Marshal(types.None[types.Instruction]())
	require.NoError(t, err)
	require.Equal(t, "null", string(bz))

	bz, err = json.Marshal(types.Some(types.Instruction{ProgramID: "p", Keys: []types.AccountKey{}}))
	require.NoError(t, err)
	require.JSONEq(t, `{"programId":"p","keys":[]}`, string(bz))

	require.Panics(t, func() { types.None[int]().MustGet() })
	require.Equal(t, 7, types.Some(7).MustGet())
}

func TestFailureResultStatusFlag(t *testing.T) {
	var f types.FailureResult
	require.NoError(t, json.Unmarshal([]byte(`{"status":false,"token":"USDC","error":"Invalid mint"}`), &f))
	require.False(t, f.Status.IsText)
	require.Equal(t, "false", f.Status.String())
	require.Equal(t, "Invalid mint", f.Error)

	f = types.FailureResult{}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"error","error":"rate limited"}`), &f))
	require.True(t, f.Status.IsText)
	require.Equal(t, "error", f.Status.String())

	f = types.FailureResult{}
	require.NoError(t, json.Unmarshal([]byte(`{"status":400,"error":"Invalid mint"}`), &f))
	require.False(t, f.Status.IsText)
	require.Equal(t, "400", f.Status.String())
	require.Equal(t, "Invalid mint", f.Error)

	bz, err := json.Marshal(f.Status)
	require.NoError(t, err)
	require.Equal(t, "400", string(bz))
}

func TestAtaResultNonStringStatus(t *testing.T) {
	var res types.AtaResult
	require.NoError(t, json.Unmarshal([]byte(`{"token":"SOL","associatedToken":"x","status":1}`), &res))
	require.Equal(t, "1", res.Status)
	require.Equal(t, "SOL", res.Token)
	require.Equal(t, "x", res.AssociatedToken)
	require.False(t, res.Verified())

	res = types.AtaResult{}
	require.NoError(t, json.Unmarshal([]byte(`{"token":"SOL","status":null}`), &res))
	require.Empty(t, res.Status)

	res = types.AtaResult{}
	require.NoError(t, json.Unmarshal([]byte(`{"token":"SOL"}`), &res))
	require.Empty(t, res.Status)
}
