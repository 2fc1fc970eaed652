package mysql

import (
	"context"

	"snackspace/internal/domain"
)

// Position-to-product mapping of the vending machines. Unstocked positions
// come back with an empty product.
const vendConfigSQL = `
select
  coalesce(vr.loc_name, '') as Position,
  coalesce(p.shortdesc, '') as Product
from vmc_ref vr
left outer join vmc_state vs on vr.vmc_ref_id = vs.vmc_ref_id
left outer join products p on vs.product_id = p.product_id
order by vr.loc_name`

// VendConfig returns the current machine configuration.
func (q *Queries) VendConfig(ctx context.Context) (*domain.Report, error) {
	return q.Report(ctx, vendConfigSQL)
}

// Vend transaction log, newest first.
const vendLogSQL = `
select
  vl.vend_tran_id,
  m.handle,
  vl.success_datetime,
  vl.cancelled_datetime,
  concat('£', cast((vl.amount_scaled/100) as decimal(20,2))) as amount,
  coalesce(vr.loc_name, vl.position) as position,
  p.shortdesc as product,
  vl.denied_reason
from vend_log vl
left outer join members m on m.member_id = vl.member_id
left outer join vmc_ref vr on vl.position = vr.loc_encoded
left outer join transactions t on t.transaction_id = vl.transaction_id
left outer join products p on p.product_id = t.product_id
order by vl.vend_tran_id desc
limit ?, ?`

// VendLog returns a page of the vend transaction log.
func (q *Queries) VendLog(ctx context.Context, offset, limit int) (*domain.Report, error) {
	return q.Report(ctx, vendLogSQL, offset, limit)
}
