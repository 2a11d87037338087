package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// SignOptions is the pass-through configuration handed to the codec when
// encoding. The zero value signs with HS256 and adds no registered claims.
type SignOptions struct {
	// Method is the JWT signing algorithm name. Defaults to HS256.
	Method string
	// TTL sets the exp claim relative to signing time when > 0 and the
	// payload does not already carry one.
	TTL time.Duration
	// NotBefore sets the nbf claim relative to signing time when > 0 and
	// absent from the payload.
	NotBefore time.Duration
	// Issuer sets the iss claim when non-empty and absent from the payload.
	Issuer string
	// Audience sets the aud claim when non-empty and absent from the payload.
	Audience []string
	// StampTokenID adds a uuid jti claim when the payload has none.
	StampTokenID bool
}

// VerifyOptions is the pass-through configuration handed to the codec when
// decoding. The zero value accepts the HMAC family with no issuer or audience
// checks.
type VerifyOptions struct {
	Methods  []string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Codec is the opaque boundary to the signing primitive. Verification
// failures are classified as expired vs otherwise invalid; nothing else about
// the underlying library leaks past this interface.
type Codec interface {
	Encode(claims Claims, key string, opts SignOptions) (string, error)
	DecodeVerified(raw, key string, opts VerifyOptions) (Claims, error)
	// DecodeUnverified is a best-effort structural decode with no
	// cryptographic check, used to recover stale/expired payload contents.
	// It never fails: total malformation yields an empty Claims.
	DecodeUnverified(raw string) Claims
}

var defaultVerifyMethods = []string{"HS256", "HS384", "HS512"}

type jwtCodec struct{}

// NewCodec returns the golang-jwt backed Codec used by default.
func NewCodec() Codec {
	return jwtCodec{}
}

func (jwtCodec) Encode(claims Claims, key string, opts SignOptions) (string, error) {
	methodName := opts.Method
	if methodName == "" {
		methodName = "HS256"
	}

	method := jwt.GetSigningMethod(methodName)
	if method == nil {
		return "", newConfigError("unknown signing method: " + methodName)
	}

	mc := make(jwt.MapClaims, len(claims)+3)
	for k, v := range claims {
		mc[k] = v
	}

	now := time.Now()
	if opts.TTL > 0 {
		if _, ok := mc["exp"]; !ok {
			mc["exp"] = jwt.NewNumericDate(now.Add(opts.TTL))
		}
	}
	if opts.NotBefore > 0 {
		if _, ok := mc["nbf"]; !ok {
			mc["nbf"] = jwt.NewNumericDate(now.Add(opts.NotBefore))
		}
	}
	if opts.Issuer != "" {
		if _, ok := mc["iss"]; !ok {
			mc["iss"] = opts.Issuer
		}
	}
	if len(opts.Audience) > 0 {
		if _, ok := mc["aud"]; !ok {
			mc["aud"] = jwt.ClaimStrings(opts.Audience)
		}
	}

	token := jwt.NewWithClaims(method, mc)

	signed, err := token.SignedString([]byte(key))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign session token")
	}

	return signed, nil
}

func (jwtCodec) DecodeVerified(raw, key string, opts VerifyOptions) (Claims, error) {
	methods := opts.Methods
	if len(methods) == 0 {
		methods = defaultVerifyMethods
	}

	parserOptions := make([]jwt.ParserOption, 0, 4)
	parserOptions = append(parserOptions, jwt.WithValidMethods(methods))
	if opts.Issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOptions = append(parserOptions, jwt.WithAudience(opts.Audience))
	}
	if opts.Leeway > 0 {
		parserOptions = append(parserOptions, jwt.WithLeeway(opts.Leeway))
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(key), nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if mc, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return Claims(mc), nil
	}

	return nil, ErrTokenMalformed
}

func (jwtCodec) DecodeUnverified(raw string) Claims {
	if raw == "" {
		return Claims{}
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Claims{}
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || mc == nil {
		return Claims{}
	}

	return Claims(mc)
}
