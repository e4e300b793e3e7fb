package registry

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

const (
	OpMD5    expr.Operator = "MD5"
	OpSHA1   expr.Operator = "SHA1"
	OpSHA256 expr.Operator = "SHA256"
	OpSHA384 expr.Operator = "SHA384"
	OpSHA512 expr.Operator = "SHA512"
)

func registerHashFuncs(b *builder) {
	register := func(op expr.Operator, sum func(string) []byte) {
		b.registerAnyStringLike(op, 1, func(args []sparqleval.Term) (sparqleval.Term, error) {
			return sparqleval.NewStringLiteral(hex.EncodeToString(sum(stringArg(args[0])))), nil
		})
	}
	register(OpMD5, func(s string) []byte { h := md5.Sum([]byte(s)); return h[:] })
	register(OpSHA1, func(s string) []byte { h := sha1.Sum([]byte(s)); return h[:] })
	register(OpSHA256, func(s string) []byte { h := sha256.Sum256([]byte(s)); return h[:] })
	register(OpSHA384, func(s string) []byte { h := sha512.Sum384([]byte(s)); return h[:] })
	register(OpSHA512, func(s string) []byte { h := sha512.Sum512([]byte(s)); return h[:] })
}
