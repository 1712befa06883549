package oracle

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// TreeDepth is the fixed circuit depth. Provers pad shorter membership paths
// with zero siblings; the registry never distributes trees deeper than this.
const TreeDepth = 16

// MembershipCircuit is the statement verified by the oracle:
//
//	"Signer is a leaf of the Merkle tree with root Root, and the bound
//	 message hash (MsgHashHi||MsgHashLo) is committed into the statement."
//
// The message hash is split into two 16-byte limbs so each fits the BN254
// scalar field. MsgCommitment absorbs the limbs through MiMC so they are
// constrained public inputs rather than free-floating values.
type MembershipCircuit struct {
	Root      frontend.Variable `gnark:",public"`
	MsgHashHi frontend.Variable `gnark:",public"`
	MsgHashLo frontend.Variable `gnark:",public"`
	Signer    frontend.Variable `gnark:",public"`

	// Private witness: the membership path and the message commitment the
	// prover derived while signing.
	Siblings      [TreeDepth]frontend.Variable
	PathBits      [TreeDepth]frontend.Variable
	MsgCommitment frontend.Variable
}

func (c *MembershipCircuit) Define(api frontend.API) error {
	// Commit the bound message into the constraint system.
	msg, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	msg.Write(c.MsgHashHi, c.MsgHashLo, c.Signer)
	api.AssertIsEqual(msg.Sum(), c.MsgCommitment)

	// Walk the path from the signer leaf to the root. A zero sibling with a
	// zero path bit leaves the running hash unchanged conceptually on the
	// prover side; in-circuit every level hashes, so provers pad by
	// committing the padded levels when building the tree.
	cur := frontend.Variable(c.Signer)
	for i := 0; i < TreeDepth; i++ {
		api.AssertIsBoolean(c.PathBits[i])

		left := api.Select(c.PathBits[i], c.Siblings[i], cur)
		right := api.Select(c.PathBits[i], cur, c.Siblings[i])

		level, err := mimc.NewMiMC(api)
		if err != nil {
			return err
		}
		level.Write(left, right)
		cur = level.Sum()
	}
	api.AssertIsEqual(cur, c.Root)
	return nil
}
