package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable documents for a single ticket.
type DocsService struct {
	Orders    repositories.OrderRepository
	RequestID string
	// Loader replaces the database lookup in tests.
	Loader func(context.Context, domain.ID) (ticketDocData, error)
}

type ticketDocData struct {
	TicketID       uint
	OrderID        uint
	UserID         uint
	PassengerName  string
	PassengerPhone string
	SeatNumber     int
	Company        string
	From           string
	To             string
	Departure      string
	Arrival        string
	Duration       string
	LicensePlate   string
	Pickup         string
	Dropoff        string
	Price          int64
	Status         string
}

// ETicket renders the ticket as a PDF. Only the owner or an admin may
// download it.
func (s DocsService) ETicket(ctx context.Context, rc domain.RequestContext, ticketID domain.ID) ([]byte, string, error) {
	d, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}
	if d.UserID != rc.UserID && rc.Role != domain.RoleAdmin {
		return nil, "", domain.ForbiddenError{Msg: "bạn không có quyền xem vé này"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(d)
}

func (s DocsService) load(ctx context.Context, id domain.ID) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	t, err := s.Orders.TicketDetail(ctx, id)
	if err != nil {
		return ticketDocData{}, err
	}
	d := ticketDocData{
		TicketID:       t.ID,
		OrderID:        t.OrderID,
		UserID:         t.UserID,
		PassengerName:  t.PassengerName,
		PassengerPhone: t.PassengerPhone,
		SeatNumber:     t.SeatNumber,
		Price:          t.Price,
		Status:         string(t.Status),
		Pickup:         s.Orders.PointName(ctx, t.PickupPointID),
		Dropoff:        s.Orders.PointName(ctx, t.DropoffPointID),
	}
	if trip := t.Trip; trip != nil {
		d.Departure = utils.FormatTime(trip.DepartureTime) + " " + utils.FormatDate(trip.DepartureTime)
		d.Arrival = utils.FormatTime(trip.ArrivalTime) + " " + utils.FormatDate(trip.ArrivalTime)
		d.Duration = utils.FindDuration(trip.DepartureTime, trip.ArrivalTime)
		if trip.Bus != nil {
			d.LicensePlate = trip.Bus.LicensePlate
		}
		if r := trip.BusRoute; r != nil {
			if r.FromCity != nil {
				d.From = r.FromCity.Name
			}
			if r.ToCity != nil {
				d.To = r.ToCity.Name
			}
			if r.BusCompany != nil {
				d.Company = r.BusCompany.Name
			}
		}
	}
	return d, nil
}

// pdfText folds text to what the core PDF fonts can draw.
func pdfText(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return utils.FoldVietnamese(v)
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VE XE DIEN TU")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ma ve         : TK-%06d", d.TicketID),
		fmt.Sprintf("Ma don hang   : #%d", d.OrderID),
		fmt.Sprintf("Nha xe        : %s", pdfText(d.Company)),
		fmt.Sprintf("Tuyen         : %s -> %s", pdfText(d.From), pdfText(d.To)),
		fmt.Sprintf("Khoi hanh     : %s", pdfText(d.Departure)),
		fmt.Sprintf("Du kien den   : %s", pdfText(d.Arrival)),
		fmt.Sprintf("Thoi gian     : %s", pdfText(d.Duration)),
		fmt.Sprintf("Bien so xe    : %s", pdfText(d.LicensePlate)),
		fmt.Sprintf("Hanh khach    : %s", pdfText(d.PassengerName)),
		fmt.Sprintf("So dien thoai : %s", pdfText(d.PassengerPhone)),
		fmt.Sprintf("So ghe        : %d", d.SeatNumber),
		fmt.Sprintf("Diem don      : %s", pdfText(d.Pickup)),
		fmt.Sprintf("Diem tra      : %s", pdfText(d.Dropoff)),
		fmt.Sprintf("Gia ve        : %s", pdfText(utils.ConvertMoney(d.Price))),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := "Ve co gia tri cho 1 hanh khach (1 ghe). Vui long co mat tai diem don truoc gio khoi hanh 15 phut."
	if d.Status == string(models.TicketCancelled) {
		note = "VE DA HUY - khong co gia tri su dung."
	}
	pdf.MultiCell(0, 6, note, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "không thể tạo vé PDF", Err: err}
	}
	filename := fmt.Sprintf("VE_%d_%s_%d.pdf", d.TicketID, utils.SafeFilenamePart(utils.FoldVietnamese(d.PassengerName)), d.SeatNumber)
	return buf.Bytes(), filename, nil
}
