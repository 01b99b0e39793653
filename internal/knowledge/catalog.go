package knowledge

// Catalog returns the built-in schema knowledge base for the Kusama indexer:
// chunks covering its types, queries, filters, relationships, and common
// query patterns. The slice is freshly allocated on each call, so callers
// may filter or reorder it freely.
func Catalog() []Chunk {
	return []Chunk{
		{
			ID:      "type-account",
			Content: "Account type represents a blockchain account or wallet address on Kusama. It has an 'id' field which is the account's unique address string (like 'CdwnRdmqJivB75M4advhMUdxMAaWgoRPhYQiwfSRigw18gc'). Accounts can have transfers going to them (transfersTo) and transfers coming from them (transfersFrom). Each account tracks all incoming and outgoing token movements.",
			Metadata: Metadata{
				Category:     "type",
				GraphQLType:  "Account",
				RelatedTypes: []string{"Transfer"},
				Examples: []string{
					`accountById(id: "CdwnRdmqJivB75M4advhMUdxMAaWgoRPhYQiwfSRigw18gc")`,
					`accounts { id transfersTo { amount } transfersFrom { amount } }`,
				},
				Keywords: []string{"wallet", "address", "account", "balance"},
			},
		},
		{
			ID:      "type-transfer",
			Content: "Transfer type represents a token transfer transaction between two accounts. Fields include: 'id' (unique identifier), 'blockNumber' (which block it occurred in), 'timestamp' (when it happened), 'extrinsicHash' (transaction hash, may be null for some transfers), 'from' (sender account), 'to' (recipient account), 'amount' (tokens transferred in smallest unit), and 'fee' (transaction fee paid, may be zero for old transfers).",
			Metadata: Metadata{
				Category:     "type",
				GraphQLType:  "Transfer",
				RelatedTypes: []string{"Account"},
				Examples: []string{
					`transferById(id: "0x123...")`,
					`transfers(where: { amount_gte: 1000000000000 }) { from { id } to { id } amount timestamp }`,
				},
				Keywords: []string{"transaction", "transfer", "payment", "send", "receive"},
			},
		},
		{
			ID:      "query-account-by-id",
			Content: "Query accountById(id: String!) returns a single Account by its exact address. Use this when you know the specific account address. The address must be a valid Kusama address string.",
			Metadata: Metadata{
				Category:     "query",
				GraphQLType:  "Query.accountById",
				RelatedTypes: []string{"Account"},
				Examples: []string{
					`accountById(id: "GcqKn3HHodwcFc3Pg3Evcbc43m7qJNMiMv744e5WMSS7TGn") { id transfersTo { amount } }`,
				},
				Keywords: []string{"single account", "specific address", "get account"},
			},
		},
		{
			ID:      "query-accounts-list",
			Content: "Query accounts returns a list of Account objects. Supports filtering with 'where' conditions, sorting with 'orderBy', pagination with 'limit' and 'offset'. Use this to search for multiple accounts or list all accounts.",
			Metadata: Metadata{
				Category:     "query",
				GraphQLType:  "Query.accounts",
				RelatedTypes: []string{"Account", "AccountWhereInput", "AccountOrderByInput"},
				Examples: []string{
					`accounts(limit: 10) { id }`,
					`accounts(where: { transfersFrom_some: { amount_gte: 1000000000000 } }) { id }`,
				},
				Keywords: []string{"list accounts", "multiple accounts", "all accounts"},
			},
		},
		{
			ID:      "query-transfer-by-id",
			Content: "Query transferById(id: String!) returns a single Transfer by its unique identifier. Use this when you have a specific transfer ID.",
			Metadata: Metadata{
				Category:     "query",
				GraphQLType:  "Query.transferById",
				RelatedTypes: []string{"Transfer"},
				Examples: []string{
					`transferById(id: "0000000001-000001-c86bf") { amount from { id } to { id } timestamp }`,
				},
				Keywords: []string{"single transfer", "specific transaction"},
			},
		},
		{
			ID:      "query-transfers-list",
			Content: "Query transfers returns a list of Transfer objects. Supports filtering with 'where' for complex conditions, 'orderBy' for sorting (e.g., by timestamp or amount), 'limit' for pagination, and 'offset' for skipping results. This is the main query for finding transactions.",
			Metadata: Metadata{
				Category:     "query",
				GraphQLType:  "Query.transfers",
				RelatedTypes: []string{"Transfer", "TransferWhereInput", "TransferOrderByInput"},
				Examples: []string{
					`transfers(orderBy: timestamp_DESC, limit: 10) { amount from { id } to { id } timestamp }`,
					`transfers(where: { blockNumber: 17581509 }) { id amount }`,
					`transfers(where: { timestamp_gte: "2024-01-01T00:00:00Z" }) { amount }`,
				},
				Keywords: []string{"list transfers", "transactions", "recent transfers", "transaction history"},
			},
		},
		{
			ID:      "filter-transfer-where",
			Content: "TransferWhereInput allows filtering transfers by: amount (amount_eq, amount_gte, amount_lte), blockNumber, timestamp (supports date comparisons), from/to accounts (can filter by nested Account properties), extrinsicHash. Use _gte for 'greater than or equal', _lte for 'less than or equal', _eq for exact match.",
			Metadata: Metadata{
				Category:     "filter",
				GraphQLType:  "TransferWhereInput",
				RelatedTypes: []string{"Transfer"},
				Examples: []string{
					`where: { amount_gte: 1000000000000 } // transfers >= 1 KSM`,
					`where: { from: { id_eq: "address" } } // transfers from specific account`,
					`where: { timestamp_gte: "2024-01-01T00:00:00Z", timestamp_lte: "2024-01-31T23:59:59Z" } // transfers in January 2024`,
					`where: { blockNumber_eq: 17581509 } // transfers in specific block`,
				},
				Keywords: []string{"filter", "where", "conditions", "search criteria"},
			},
		},
		{
			ID:      "filter-ordering",
			Content: "Ordering results: Use orderBy parameter with fields like timestamp_DESC (newest first), timestamp_ASC (oldest first), amount_DESC (largest first), amount_ASC (smallest first), blockNumber_DESC (recent blocks first). DESC means descending order, ASC means ascending order.",
			Metadata: Metadata{
				Category:     "filter",
				GraphQLType:  "OrderByInput",
				RelatedTypes: []string{"TransferOrderByInput", "AccountOrderByInput"},
				Examples: []string{
					`orderBy: timestamp_DESC // newest transfers first`,
					`orderBy: amount_DESC // largest transfers first`,
					`orderBy: blockNumber_ASC // oldest blocks first`,
				},
				Keywords: []string{"sort", "order", "orderBy", "latest", "recent", "biggest", "smallest"},
			},
		},
		{
			ID:      "relationship-account-transfers",
			Content: "Account to Transfer relationships: Each Account has 'transfersTo' (incoming transfers where this account is the recipient) and 'transfersFrom' (outgoing transfers where this account is the sender). These fields return arrays of Transfer objects and support the same filtering and ordering as the main transfers query.",
			Metadata: Metadata{
				Category:     "relationship",
				GraphQLType:  "Account.transfersTo, Account.transfersFrom",
				RelatedTypes: []string{"Account", "Transfer"},
				Examples: []string{
					`account { transfersTo(orderBy: timestamp_DESC, limit: 5) { amount timestamp } }`,
					`account { transfersFrom(where: { amount_gte: 1000000000000 }) { to { id } amount } }`,
				},
				Keywords: []string{"incoming", "outgoing", "sent", "received", "account transfers"},
			},
		},
		{
			ID:      "relationship-transfer-accounts",
			Content: "Transfer to Account relationships: Each Transfer has 'from' (sender Account) and 'to' (recipient Account) fields. These return the complete Account object, allowing you to access the account's ID and navigate to their other transfers.",
			Metadata: Metadata{
				Category:     "relationship",
				GraphQLType:  "Transfer.from, Transfer.to",
				RelatedTypes: []string{"Transfer", "Account"},
				Examples: []string{
					`transfer { from { id } to { id } }`,
					`transfer { from { transfersFrom(limit: 5) { amount } } } // sender's recent sends`,
				},
				Keywords: []string{"sender", "recipient", "from account", "to account"},
			},
		},
		{
			ID:      "concept-kusama-basics",
			Content: "Kusama is Polkadot's canary network. KSM is the native token. Amounts are stored in the smallest unit (1 KSM = 1,000,000,000,000 units). Common addresses include validators like 'GcqKn3HHodwcFc3Pg3Evcbc43m7qJNMiMv744e5WMSS7TGn'. Block numbers increase over time. Timestamps are in ISO format (e.g., '2024-01-15T10:30:00Z').",
			Metadata: Metadata{
				Category: "concept",
				Examples: []string{
					`1000000000000 units = 1 KSM`,
					`Block 17581509 is a specific block height`,
					`Timestamps like '2024-01-15T10:30:00Z' for January 15, 2024`,
				},
				Keywords: []string{"KSM", "kusama", "units", "denomination", "planck"},
			},
		},
		{
			ID:      "concept-pagination",
			Content: "Pagination: Use 'limit' to restrict number of results (e.g., limit: 10 for top 10), 'offset' to skip results (e.g., offset: 20 to skip first 20). Combine with orderBy for consistent pagination. Maximum limit depends on query complexity.",
			Metadata: Metadata{
				Category: "concept",
				Examples: []string{
					`transfers(limit: 10, offset: 0) // first page`,
					`transfers(limit: 10, offset: 10) // second page`,
					`transfers(orderBy: timestamp_DESC, limit: 5) // latest 5 transfers`,
				},
				Keywords: []string{"pagination", "limit", "offset", "page", "results per page"},
			},
		},
		{
			ID:      "example-last-transaction",
			Content: "To find the last/latest transaction for an address: Query the account by ID, then get transfersFrom or transfersTo ordered by timestamp_DESC with limit 1. This pattern works for finding the most recent activity.",
			Metadata: Metadata{
				Category: "example",
				Examples: []string{
					`accountById(id: "CdwnRdmqJivB75M4advhMUdxMAaWgoRPhYQiwfSRigw18gc") { transfersFrom(orderBy: timestamp_DESC, limit: 1) { id amount to { id } timestamp blockNumber } }`,
				},
				Keywords: []string{"last transaction", "latest transaction", "most recent"},
			},
		},
		{
			ID:      "example-recent-transfers",
			Content: "To find transfers in the last hour or specific time period: Use timestamp filtering with _gte (greater than or equal) for start time and _lte (less than or equal) for end time. Calculate the timestamp for 'one hour ago' from current time.",
			Metadata: Metadata{
				Category: "example",
				Examples: []string{
					`transfers(where: { timestamp_gte: "2024-01-15T09:00:00Z", timestamp_lte: "2024-01-15T10:00:00Z" }, orderBy: timestamp_DESC) { id amount from { id } to { id } timestamp }`,
				},
				Keywords: []string{"last hour", "recent", "time period", "today", "this week"},
			},
		},
		{
			ID:      "example-block-transfers",
			Content: "To find what happened in a specific block: Query transfers with blockNumber_eq filter. Each block can contain multiple transfers. Block numbers are integers that increase with each new block.",
			Metadata: Metadata{
				Category: "example",
				Examples: []string{
					`transfers(where: { blockNumber_eq: 17581509 }) { id amount from { id } to { id } extrinsicHash timestamp }`,
				},
				Keywords: []string{"specific block", "block number", "block transfers", "block transactions"},
			},
		},
		{
			ID:      "example-large-transfers",
			Content: "To find large transfers or whale movements: Use amount_gte filter with large values. Remember amounts are in smallest units (1 KSM = 1e12 units). Combine with orderBy: amount_DESC to see biggest first.",
			Metadata: Metadata{
				Category: "example",
				Examples: []string{
					`transfers(where: { amount_gte: "1000000000000000" }, orderBy: amount_DESC, limit: 10) { amount from { id } to { id } timestamp } // >= 1000 KSM`,
				},
				Keywords: []string{"large transfers", "whale", "big transactions", "high value"},
			},
		},
		{
			ID:      "example-account-activity",
			Content: "To get all activity for an account: Query account by ID and fetch both transfersTo (received) and transfersFrom (sent). You can filter and order these separately to analyze account behavior.",
			Metadata: Metadata{
				Category: "example",
				Examples: []string{
					`accountById(id: "address") { transfersTo(orderBy: timestamp_DESC, limit: 10) { amount from { id } timestamp } transfersFrom(orderBy: timestamp_DESC, limit: 10) { amount to { id } timestamp } }`,
				},
				Keywords: []string{"account activity", "account history", "all transfers", "account analysis"},
			},
		},
		{
			ID:      "example-transfer-between-accounts",
			Content: "To find transfers between two specific accounts: Use compound where conditions with both from and to account filters. This helps track payments or interactions between specific addresses.",
			Metadata: Metadata{
				Category: "example",
				Examples: []string{
					`transfers(where: { from: { id_eq: "sender_address" }, to: { id_eq: "recipient_address" } }) { amount timestamp blockNumber }`,
				},
				Keywords: []string{"between accounts", "from to", "specific sender receiver", "payment tracking"},
			},
		},
	}
}
