package domain

// Address is a Sui account address. Resolvers treat it as an opaque string.
type Address string

const EmptyAddress = Address("")

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) String() string {
	return string(a)
}
