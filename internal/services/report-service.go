package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"rtub-system/internal/repositories"
	"rtub-system/pkg/types"
)

type ReportServiceInterface interface {
	MembersReport(ctx context.Context) (*bytes.Buffer, error)
	FinanceReport(ctx context.Context) (*bytes.Buffer, error)
}

// ReportService renders xlsx exports for the board. Reports are built on the
// fly; nothing is stored.
type ReportService struct {
	memberRepo      repositories.MemberRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	rehearsalRepo   repositories.RehearsalRepositoryInterface
	logger          *zap.Logger
}

func NewReportService(
	memberRepo repositories.MemberRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	rehearsalRepo repositories.RehearsalRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		rehearsalRepo:   rehearsalRepo,
		logger:          logger,
	}
}

func setHeaderRow(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) MembersReport(ctx context.Context) (*bytes.Buffer, error) {
	members, _, err := s.memberRepo.GetAll(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Members"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Name", "Nickname", "Email", "Categories", "Positions", "Founder", "Rehearsals attended"}
	if err := setHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, m := range members {
		row := i + 2
		nickname := ""
		if m.Nickname != nil {
			nickname = *m.Nickname
		}
		present, total, err := s.rehearsalRepo.CountAttendanceByMember(ctx, m.ID)
		if err != nil {
			return nil, err
		}

		values := []interface{}{
			m.ID,
			m.FullName,
			nickname,
			m.Email,
			strings.Join(m.Categories, ", "),
			strings.Join(m.Positions, ", "),
			m.IsFounder,
			fmt.Sprintf("%d/%d", present, total),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render members report: %w", err)
	}
	return buffer, nil
}

func (s *ReportService) FinanceReport(ctx context.Context) (*bytes.Buffer, error) {
	transactions, _, err := s.transactionRepo.GetAll(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	balance, err := s.transactionRepo.GetBalance(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ledger"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Kind", "Amount", "Description", "Date"}
	if err := setHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, t := range transactions {
		row := i + 2
		values := []interface{}{
			t.ID,
			t.Kind,
			float64(t.AmountCents) / 100,
			t.Description,
			t.OccurredAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	summaryRow := len(transactions) + 3
	summary := [][2]interface{}{
		{"Income", float64(balance.IncomeCents) / 100},
		{"Expenses", float64(balance.ExpenseCents) / 100},
		{"Balance", float64(balance.BalanceCents) / 100},
	}
	for i, pair := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow+i)
		if err := f.SetCellValue(sheet, labelCell, pair[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, valueCell, pair[1]); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render finance report: %w", err)
	}
	return buffer, nil
}
