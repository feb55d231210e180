package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ContractInput holds the seven fields substituted into the service
// agreement template. Values pass through verbatim; the template is
// text/template on purpose, the document consumer expects the literal
// values unescaped.
type ContractInput struct {
	CompanyName     string
	CompanyID       string
	CompanyAddress  string
	LegalRepName    string
	LegalRepID      string
	LegalRepAddress string
	LegalRepGender  string
	GeneratedAt     string
}

// contractTemplate is the fixed legal template. Only the placeholders vary.
const contractTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Contrato de Servicios - {{.CompanyName}}</title>
</head>
<body>
<h1>CONTRATO DE PRESTACI&Oacute;N DE SERVICIOS FINANCIEROS</h1>
<p>Entre nosotros, <strong>{{.CompanyName}}</strong>, c&eacute;dula jur&iacute;dica
n&uacute;mero <strong>{{.CompanyID}}</strong>, con domicilio en {{.CompanyAddress}},
en adelante denominada "LA EMPRESA", representada en este acto por
<strong>{{.LegalRepName}}</strong>, de g&eacute;nero {{.LegalRepGender}}, portador de la
c&eacute;dula de identidad n&uacute;mero {{.LegalRepID}}, con domicilio en
{{.LegalRepAddress}}, en su condici&oacute;n de representante legal con facultades
suficientes para este acto, se acuerda celebrar el presente contrato de
prestaci&oacute;n de servicios, el cual se regir&aacute; por las siguientes cl&aacute;usulas:</p>
<h2>PRIMERA: OBJETO</h2>
<p>LA EMPRESA contrata los servicios de gesti&oacute;n y an&aacute;lisis de portafolio
descritos en el anexo t&eacute;cnico adjunto.</p>
<h2>SEGUNDA: VIGENCIA</h2>
<p>El presente contrato rige a partir de su firma y tendr&aacute; una vigencia de un
a&ntilde;o, prorrogable autom&aacute;ticamente por per&iacute;odos iguales salvo aviso en contrario.</p>
<h2>TERCERA: CONFIDENCIALIDAD</h2>
<p>Las partes se obligan a mantener estricta confidencialidad sobre la
informaci&oacute;n financiera intercambiada en ejecuci&oacute;n de este contrato.</p>
<p>Firmado en la fecha {{.GeneratedAt}}.</p>
<p>_________________________<br>
{{.LegalRepName}}<br>
Representante legal, {{.CompanyName}}</p>
</body>
</html>
`

// ContractService fills the service agreement template and, when an archive
// bucket is configured, keeps an S3 copy of every generated document.
type ContractService struct {
	tmpl     *template.Template
	s3Client *s3.Client
	bucket   string
	logger   zerolog.Logger
}

// NewContractService builds the service. s3Client may be nil; archiving is
// skipped when it is, or when bucket is empty.
func NewContractService(s3Client *s3.Client, bucket string, logger zerolog.Logger) *ContractService {
	lg := logger.With().Str("service", "ContractService").Logger()
	return &ContractService{
		tmpl:     template.Must(template.New("contract").Parse(contractTemplate)),
		s3Client: s3Client,
		bucket:   bucket,
		logger:   lg,
	}
}

// Generate renders the contract document. Archive failures are logged and
// never fail the request.
func (s *ContractService) Generate(ctx context.Context, in ContractInput) ([]byte, error) {
	if in.GeneratedAt == "" {
		in.GeneratedAt = time.Now().Format("02-Jan-2006")
	}
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, in); err != nil {
		return nil, fmt.Errorf("rendering contract: %w", err)
	}
	doc := buf.Bytes()

	if s.s3Client != nil && s.bucket != "" {
		key := fmt.Sprintf("contracts/%s-%d.html", sanitizeKey(in.CompanyID), time.Now().Unix())
		_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(doc),
			ContentType: aws.String("text/html; charset=utf-8"),
		})
		if err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("failed to archive contract to S3")
		} else {
			s.logger.Info().Str("key", key).Msg("contract archived")
		}
	}

	return doc, nil
}

func sanitizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
