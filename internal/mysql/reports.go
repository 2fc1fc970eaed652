package mysql

import (
	"context"
	"database/sql"

	"snackspace/internal/domain"
)

// Report runs a read-only query and returns its result as column names
// plus rows of values, the shape the stats endpoints serve. Values come
// back as strings (MySQL text protocol semantics); NULL stays nil.
func (q *Queries) Report(ctx context.Context, query string, args ...any) (*domain.Report, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.report", Message: "prepare/execute failed", Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.report", Message: "prepare/execute failed", Err: err}
	}

	report := &domain.Report{Columns: cols, Data: [][]any{}}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		targets := make([]any, len(cols))
		for i := range cells {
			targets[i] = &cells[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.report", Message: "scan failed", Err: err}
		}

		row := make([]any, len(cols))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		report.Data = append(report.Data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.Error{Code: domain.EINTERNAL, Op: "mysql.report", Message: "prepare/execute failed", Err: err}
	}
	return report, nil
}

// Monthly snackspace overview: vend counts and value per month alongside
// laser charges and member payments.
const SnackspaceMonthlySQL = `
select
  year(l.success_time) as Year,
  monthname(l.success_time) as Month,
  count(*) as "Items vended",
  count(IF(l.vending_machine_id = 1, 1, NULL)) as "Snacks Vended",
  count(IF(l.vending_machine_id = 4, 1, NULL)) as "Drinks Vended",
  concat('£', cast((sum(l.amount_scaled)/100) as decimal(20,2))) as "Vend value",
  concat('£', cast((avg(l.amount_scaled)/100) as decimal(20,2))) as "Avg item cost",
  (
    select concat('£', cast((sum(-1*t.amount)/100) as decimal(20,2)))
    from transactions t
    where year(l.success_time) = year(t.transaction_datetime)
      and month(l.success_time) = month(t.transaction_datetime)
      and t.transaction_status = 'COMPLETE'
      and t.transaction_type = 'TOOL'
  ) as "Laser charges",
  (
    select concat('£', cast((sum(t.amount)/100) as decimal(20,2)))
    from transactions t
    where year(l.success_time) = year(t.transaction_datetime)
      and month(l.success_time) = month(t.transaction_datetime)
      and t.amount > 0
      and t.transaction_status = 'COMPLETE'
  ) as "Payments"
from vend_logs l
where (l.vending_machine_id in (1, 4) or l.vending_machine_id is null)
  and l.success_time is not null
group by year(l.success_time), monthname(l.success_time)
order by year(l.success_time) desc, month(l.success_time) desc`

// Per-product sales totals.
const VendSalesSQL = `
select
  p.shortdesc as Product,
  count(*) as "Times vended",
  concat('£', cast((sum(l.amount_scaled)/100) as decimal(20,2))) as "Total value",
  max(l.success_time) as "Last vended"
from vend_logs l
inner join products p on p.product_id = l.product_id
where l.success_time is not null
group by p.shortdesc
order by count(*) desc`

// Current stock layout of every machine.
const VendStockSQL = `
select
  vd.vmc_description as VendingMachine,
  vr.loc_name as Position,
  p.shortdesc as Product,
  p.longdesc as Description,
  concat('£', cast((price/100) as decimal(20,2))) as Cost
from vmc_ref vr
inner join vmc_details vd on vd.vmc_id = vr.vmc_id
left outer join vmc_state vs on vr.vmc_ref_id = vs.vmc_ref_id
left outer join products p on vs.product_id = p.product_id
order by vr.vmc_id, vr.loc_name`

// Member activity buckets from the gatekeeper access log.
const MemberStatsSQL = `
select
  count(distinct if(al.access_time >= date_sub(now(), interval 1 day), al.member_id, null)) as "Last day",
  count(distinct if(al.access_time >= date_sub(now(), interval 1 week), al.member_id, null)) as "Last week",
  count(distinct if(al.access_time >= date_sub(now(), interval 1 month), al.member_id, null)) as "Last month",
  count(distinct if(al.access_time >= date_sub(now(), interval 1 quarter), al.member_id, null)) as "Last quarter",
  count(distinct if(al.access_time >= date_sub(now(), interval 1 year), al.member_id, null)) as "Last year",
  count(distinct al.member_id) as "Anytime"
from access_log al`

// Laser cutter usage and charged income per month.
const LaserUsageSQL = `
select
  year(tu.start) as Year,
  monthname(tu.start) as Month,
  sec_to_time(sum(tu.duration)) as "Time (hh:mm:ss)",
  sec_to_time(sum(case when tu.status = 'CHARGED' then tu.duration else 0 end)) as "Charged Time (hh:mm:ss)",
  concat('£', cast((sum(case when tu.status = 'CHARGED' then tu.duration else 0 end)*(3/60/60)) as decimal(20,2))) as "Charged Income",
  count(distinct tu.member_id) as "Distinct users"
from tool_usages tu
where tu.duration > 0
group by year(tu.start), monthname(tu.start)
order by year(tu.start) desc, month(tu.start) desc`
