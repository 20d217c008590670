package repokit

import (
	"context"
	"errors"
	"testing"
)

// recorder is a TxRunner that logs every statement and whether it ran in a tx
type recorder struct {
	log []string
}

type recQ struct {
	r    *recorder
	inTx bool
}

func (q recQ) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	if q.inTx {
		sql = "tx:" + sql
	}
	q.r.log = append(q.r.log, sql)
	return nil, nil
}
func (q recQ) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (q recQ) QueryRow(context.Context, string, ...any) Row        { return nil }

func (r *recorder) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return recQ{r: r}.Exec(ctx, sql, args...)
}
func (r *recorder) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (r *recorder) QueryRow(context.Context, string, ...any) Row        { return nil }
func (r *recorder) Tx(_ context.Context, fn func(Queryer) error) error {
	r.log = append(r.log, "BEGIN")
	if err := fn(recQ{r: r, inTx: true}); err != nil {
		r.log = append(r.log, "ROLLBACK")
		return err
	}
	r.log = append(r.log, "COMMIT")
	return nil
}

func TestWithBeginHooksRunFirstInTheSameTx(t *testing.T) {
	rec := &recorder{}
	hook := func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, "SET LOCAL synchronous_commit TO OFF")
		return err
	}
	tx := WithBeginHooks(rec, hook)

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "TRUNCATE sales_facts")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	want := []string{"BEGIN", "tx:SET LOCAL synchronous_commit TO OFF", "tx:TRUNCATE sales_facts", "COMMIT"}
	if len(rec.log) != len(want) {
		t.Fatalf("log = %v", rec.log)
	}
	for i := range want {
		if rec.log[i] != want[i] {
			t.Fatalf("log = %v, want %v", rec.log, want)
		}
	}

	// outside a transaction the hooks stay out of the way
	rec.log = nil
	if _, err := tx.Exec(context.Background(), "SELECT 1"); err != nil || len(rec.log) != 1 || rec.log[0] != "SELECT 1" {
		t.Fatalf("plain exec: %v %v", rec.log, err)
	}
}

func TestFailingHookSkipsBody(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	ran := false
	err := WithTx(context.Background(), WithBeginHooks(rec, func(context.Context, Queryer) error { return boom }), func(Queryer) error {
		ran = true
		return nil
	})
	if !errors.Is(err, boom) || ran || rec.log[len(rec.log)-1] != "ROLLBACK" {
		t.Fatalf("err=%v ran=%v log=%v", err, ran, rec.log)
	}
}

type stationRepo struct{ q Queryer }

func TestMustBind(t *testing.T) {
	b := BindFunc[stationRepo](func(q Queryer) stationRepo { return stationRepo{q: q} })
	rec := &recorder{}
	if got := MustBind[stationRepo](b, rec); got.q != rec {
		t.Fatalf("bound to %v", got.q)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil Queryer")
		}
	}()
	MustBind[stationRepo](b, nil)
}
